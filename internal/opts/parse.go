// Package opts parses the sltools command line.
//
// Short options follow getopts conventions: an argument may be attached
// (-id) or separate (-i d), and options without arguments may be bundled
// (-uc). Flags registered on the *flag.FlagSet given to Parse are accepted
// as --name, and single-letter ones as -n.
package opts

import (
	"flag"
	"io/ioutil"
	"strings"

	"github.com/spf13/pflag"
)

// ParsedOptions holds the action selected for each flag category.
// It is built once by Parse and never mutated afterwards.
type ParsedOptions struct {
	Install   InstallMode
	Test      TestMode
	Doc       DocMode
	Clean     bool
	Uninstall bool
	Help      bool

	// Operands are the non-option arguments. Nothing consumes them.
	Operands []string
}

// Empty reports whether no action was requested.
func (p ParsedOptions) Empty() bool {
	return p.Install == InstallNone &&
		p.Test == TestNone &&
		p.Doc == DocNone &&
		!p.Clean && !p.Uninstall && !p.Help
}

// Parse parses args into ParsedOptions. Flags defined on fl are set on fl;
// fl may be nil.
//
// The last occurrence of a flag wins and the first failure is returned,
// unless -h appears anywhere, in which case the result only has Help set.
func Parse(args []string, fl *flag.FlagSet) (ParsedOptions, error) {
	if wantsHelp(args) {
		return ParsedOptions{Help: true}, nil
	}

	var (
		p        ParsedOptions
		valueErr error
	)

	pf := pflag.NewFlagSet("sltools", pflag.ContinueOnError)
	pf.SetOutput(ioutil.Discard)
	pf.SortFlags = false

	pf.VarP(&modeValue{
		flag:    "i",
		allowed: InstallValues,
		err:     &valueErr,
		set: func(v string) (ok bool) {
			p.Install, ok = parseInstallMode(v)
			return ok
		},
	}, "install", "i", "Install mode: d (dev) or n (normal).")
	pf.VarP(&modeValue{
		flag:    "t",
		allowed: TestValues,
		err:     &valueErr,
		set: func(v string) (ok bool) {
			p.Test, ok = parseTestMode(v)
			return ok
		},
	}, "test", "t", "Test mode: p, t, a, d or s.")
	pf.VarP(&modeValue{
		flag:    "d",
		allowed: DocValues,
		err:     &valueErr,
		set: func(v string) (ok bool) {
			p.Doc, ok = parseDocMode(v)
			return ok
		},
	}, "doc", "d", "Doc mode: h (html) or s (serve).")
	pf.BoolVarP(&p.Uninstall, "uninstall", "u", false, "Uninstall the package.")
	pf.BoolVarP(&p.Clean, "clean", "c", false, "Remove build artifacts.")
	pf.BoolVarP(&p.Help, "help", "h", false, "Print help.")

	if fl != nil {
		pf.AddGoFlagSet(fl)
	}

	err := pf.Parse(args)
	if err != nil {
		if valueErr != nil {
			return ParsedOptions{}, valueErr
		}
		return ParsedOptions{}, parseError(err)
	}
	if p.Help {
		return ParsedOptions{Help: true}, nil
	}

	if len(pf.Args()) > 0 {
		p.Operands = pf.Args()
	}
	return p, nil
}

// modeValue accepts one of a fixed set of arguments. set applies an
// accepted argument to the options being parsed.
type modeValue struct {
	flag    string
	allowed []string
	set     func(string) bool
	// err receives the typed error, since pflag flattens it into a string.
	err *error

	value string
}

var _ pflag.Value = new(modeValue)

func (v *modeValue) String() string { return v.value }

func (v *modeValue) Type() string { return "mode" }

func (v *modeValue) Set(s string) error {
	var err error
	switch {
	// -i= leaves just the separator.
	case s == "" || s == "=":
		err = &MissingArgumentError{Flag: v.flag}
	case !v.set(s):
		err = &ArgumentValueError{Flag: v.flag, Value: s, Allowed: v.allowed}
	default:
		v.value = s
		return nil
	}
	*v.err = err
	return err
}

// helpBundle holds the argument-less short options -h may be bundled with.
const helpBundle = "uch"

// wantsHelp reports whether -h or --help appears as an option. It runs
// before parsing so that -h wins over any failure elsewhere on the line.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "--help" {
			return true
		}
		if len(arg) < 2 || arg[0] != '-' || arg[1] == '-' {
			continue
		}
		for _, c := range arg[1:] {
			if c == 'h' {
				return true
			}
			if !strings.ContainsRune(helpBundle, c) {
				break
			}
		}
	}
	return false
}

// parseError maps pflag's parse failures onto the error types of this
// package. Anything else is returned as is.
func parseError(err error) error {
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "unknown shorthand flag: "):
		return &UnknownFlagError{Flag: quoted(msg)}
	case strings.HasPrefix(msg, "unknown flag: "):
		return &UnknownFlagError{Flag: strings.TrimLeft(strings.TrimPrefix(msg, "unknown flag: "), "-")}
	case strings.HasPrefix(msg, "bad flag syntax: "):
		return &UnknownFlagError{Flag: strings.TrimLeft(strings.TrimPrefix(msg, "bad flag syntax: "), "-")}
	case strings.HasPrefix(msg, "flag needs an argument: "):
		rest := strings.TrimPrefix(msg, "flag needs an argument: ")
		if name := quoted(rest); name != "" {
			return &MissingArgumentError{Flag: name}
		}
		return &MissingArgumentError{Flag: strings.TrimLeft(rest, "-")}
	}
	return err
}

// quoted returns the first single-quoted character in s, as pflag prints
// shorthands.
func quoted(s string) string {
	i := strings.IndexByte(s, '\'')
	if i < 0 {
		return ""
	}
	j := strings.IndexByte(s[i+1:], '\'')
	if j < 0 {
		return ""
	}
	return s[i+1 : i+1+j]
}
