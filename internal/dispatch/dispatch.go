// Package dispatch runs the actions selected on the command line.
//
// Actions always run in the same order: install, test, document, clean,
// uninstall. Each runs at most once and the first failure stops the rest.
package dispatch

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
	"go.coder.com/flog"
	"golang.org/x/xerrors"

	"go.coder.com/sltools/internal/cleanup"
	"go.coder.com/sltools/internal/opts"
	"go.coder.com/sltools/internal/toolconf"
	"go.coder.com/sltools/internal/xexec"
)

// Dispatcher maps parsed options onto external commands.
type Dispatcher struct {
	Runner xexec.Runner
	Config toolconf.Config
	// Dir is the working tree commands run in and cleanup applies to.
	Dir string

	// Debug logs verbose messages. It may be nil.
	Debug func(msg string, args ...interface{})
	// OpenFile opens generated documentation. It defaults to browser.OpenFile.
	OpenFile func(path string) error
}

// Dispatch runs every action o selects.
func (d *Dispatcher) Dispatch(ctx context.Context, o opts.ParsedOptions) error {
	steps := []struct {
		name string
		fn   func(context.Context, opts.ParsedOptions) error
	}{
		{"install", d.install},
		{"test", d.test},
		{"doc", d.doc},
		{"clean", d.clean},
		{"uninstall", d.uninstall},
	}

	for _, step := range steps {
		err := step.fn(ctx, o)
		if err != nil {
			return xerrors.Errorf("%s: %w", step.name, err)
		}
	}
	return nil
}

func (d *Dispatcher) install(ctx context.Context, o opts.ParsedOptions) error {
	var action string
	switch o.Install {
	case opts.InstallNone:
		return nil
	case opts.InstallDev:
		flog.Info("Installing %v (dev)...", d.Config.Package)
		action = toolconf.ActionInstallDev
	case opts.InstallNormal:
		flog.Info("Installing %v...", d.Config.Package)
		action = toolconf.ActionInstall
	default:
		return &opts.InvalidModeError{Category: "install", Mode: o.Install.String(), Allowed: opts.InstallValues}
	}

	err := d.run(ctx, action)
	if err != nil {
		return err
	}
	flog.Success("Install complete")
	return nil
}

func (d *Dispatcher) test(ctx context.Context, o opts.ParsedOptions) error {
	var action string
	switch o.Test {
	case opts.TestNone:
		return nil
	case opts.TestProject:
		flog.Info("Running project tests...")
		action = toolconf.ActionTestProject
	case opts.TestTools:
		flog.Info("Running tool tests...")
		action = toolconf.ActionTestTools
	case opts.TestAll:
		flog.Info("Running all tests...")
		action = toolconf.ActionTestAll
	case opts.TestPackage:
		flog.Info("Running %v tests...", d.Config.Package)
		action = toolconf.ActionTestPackage
	case opts.TestStyle:
		flog.Info("Checking style...")
		action = toolconf.ActionTestStyle
	default:
		return &opts.InvalidModeError{Category: "test", Mode: o.Test.String(), Allowed: opts.TestValues}
	}

	err := d.run(ctx, action)
	if err != nil {
		return err
	}
	flog.Success("Tests complete")
	return nil
}

func (d *Dispatcher) doc(ctx context.Context, o opts.ParsedOptions) error {
	switch o.Doc {
	case opts.DocNone:
		return nil
	case opts.DocHTML:
		docsDir := d.path(d.Config.DocsDir)
		err := os.MkdirAll(docsDir, 0755)
		if err != nil {
			return xerrors.Errorf("failed to create %v: %w", docsDir, err)
		}

		flog.Info("Generating documentation in %v...", d.Config.DocsDir)
		err = d.run(ctx, toolconf.ActionDocHTML)
		if err != nil {
			return err
		}
		flog.Success("Documentation generated")

		if d.Config.OpenDocs {
			d.openDocs(filepath.Join(docsDir, "index.html"))
		}
		return nil
	case opts.DocServe:
		flog.Info("Serving documentation...")
		return d.run(ctx, toolconf.ActionDocServe)
	default:
		return &opts.InvalidModeError{Category: "doc", Mode: o.Doc.String(), Allowed: opts.DocValues}
	}
}

func (d *Dispatcher) clean(ctx context.Context, o opts.ParsedOptions) error {
	if !o.Clean {
		return nil
	}
	flog.Info("Cleaning up workspace...")

	removed, err := cleanup.Remove(d.dir(), d.Config.CleanDirs)
	for _, path := range removed {
		d.debug("removed %v", path)
	}
	if err != nil {
		return err
	}

	removed, err = cleanup.RemoveCaches(d.dir(), d.Config.CachePattern)
	for _, path := range removed {
		d.debug("removed %v", path)
	}
	if err != nil {
		return err
	}

	flog.Success("Cleanup complete")
	return nil
}

func (d *Dispatcher) uninstall(ctx context.Context, o opts.ParsedOptions) error {
	if !o.Uninstall {
		return nil
	}
	flog.Info("Uninstalling %v...", d.Config.Package)

	err := d.run(ctx, toolconf.ActionUninstall)
	if err != nil {
		return err
	}
	flog.Success("Uninstall complete")
	return nil
}

func (d *Dispatcher) run(ctx context.Context, action string) error {
	argv, err := d.Config.Command(action)
	if err != nil {
		return err
	}

	cmd := xexec.Command{
		Action: action,
		Name:   argv[0],
		Args:   argv[1:],
		Dir:    d.Dir,
	}
	d.debug("running `%v`", cmd)
	return d.Runner.Run(ctx, cmd)
}

func (d *Dispatcher) openDocs(index string) {
	open := d.OpenFile
	if open == nil {
		open = browser.OpenFile
	}

	d.debug("opening %v", index)
	err := open(index)
	if err != nil {
		flog.Error("failed to open %v: %v", index, err)
	}
}

func (d *Dispatcher) dir() string {
	if d.Dir == "" {
		return "."
	}
	return d.Dir
}

func (d *Dispatcher) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(d.dir(), p)
}

func (d *Dispatcher) debug(msg string, args ...interface{}) {
	if d.Debug != nil {
		d.Debug(msg, args...)
	}
}
