package main

import (
	"context"
	_ "embed"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.coder.com/cli"
	"go.coder.com/flog"
	"golang.org/x/xerrors"

	"go.coder.com/sltools/internal/dispatch"
	"go.coder.com/sltools/internal/opts"
	"go.coder.com/sltools/internal/xexec"
)

// helpDoc is printed by -h.
//go:embed README.md
var helpDoc string

var _ interface {
	cli.Command
	cli.FlaggedCommand
} = new(rootCmd)

type rootCmd struct {
	globalFlags

	printVersion bool

	// dir is the working tree. Empty means the current directory.
	dir    string
	stdout io.Writer
	stderr io.Writer
	runner xexec.Runner
	// openFile is passed through to the dispatcher when set.
	openFile func(path string) error
}

func (r *rootCmd) Spec() cli.CommandSpec {
	return cli.CommandSpec{
		Name:  "sltools",
		Usage: "[-i d|n] [-t p|t|a|d|s] [-d h|s] [-c] [-u] [-h]",
		Desc: `Development helper for the stat_log_db package.
Installs, tests, documents and cleans the package by running pip, pytest,
flake8 and pdoc. Actions run in the order install, test, doc, clean, uninstall.`,
	}
}

func (r *rootCmd) RegisterFlags(fl *flag.FlagSet) {
	fl.BoolVar(&r.verbose, "v", false, "Enable debug logging.")
	fl.StringVar(&r.configPath, "config", "sltools.toml", "Path to config.")
	fl.BoolVar(&r.printVersion, "version", false, "Print the version.")
}

// Run parses the getopts-style options left in fl.Args() and exits with
// the status of the dispatch.
func (r *rootCmd) Run(fl *flag.FlagSet) {
	if r.handleAutocomplete(fl) {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := r.run(ctx, fl)
	stop()
	os.Exit(code)
}

func (r *rootCmd) run(ctx context.Context, fl *flag.FlagSet) int {
	o, err := opts.Parse(fl.Args(), fl)
	if err != nil {
		// Usage errors are printed bare, without flog's prefix.
		fmt.Fprintln(r.errOut(), err)
		return 1
	}
	if o.Help {
		_, err = io.WriteString(r.out(), helpDoc)
		if err != nil {
			flog.Error("failed to write help: %v", err)
			return 1
		}
		return 0
	}
	if r.printVersion {
		_, _ = io.WriteString(r.out(), versionString()+"\n")
		return 0
	}
	if len(o.Operands) > 0 {
		r.debug("ignoring operands %q", o.Operands)
	}
	if o.Empty() {
		r.debug("nothing to do")
		return 0
	}

	conf, err := r.config()
	if err != nil {
		flog.Error("%v", err)
		return 1
	}

	d := &dispatch.Dispatcher{
		Runner:   r.runner,
		Config:   conf,
		Dir:      r.dir,
		Debug:    r.debug,
		OpenFile: r.openFile,
	}
	if d.Runner == nil {
		d.Runner = xexec.ExecRunner{}
	}

	return exitCode(d.Dispatch(ctx, o))
}

func (r *rootCmd) out() io.Writer {
	if r.stdout == nil {
		return os.Stdout
	}
	return r.stdout
}

func (r *rootCmd) errOut() io.Writer {
	if r.stderr == nil {
		return os.Stderr
	}
	return r.stderr
}

// exitCode reports err and maps it to a process exit status. A failing
// external tool's status is passed through.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	flog.Error("%v", err)

	var exitErr *xexec.ExitError
	if xerrors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}

func main() {
	// The leading -- leaves the whole command line to opts.Parse.
	cli.Run(&rootCmd{}, append([]string{"--"}, os.Args[1:]...), "")
}
