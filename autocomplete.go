package main

import (
	"flag"
	"fmt"
	"unicode/utf8"

	"github.com/posener/complete"

	"go.coder.com/cli"
	"go.coder.com/sltools/internal/opts"
)

// genAutocomplete predicts the short options and their allowed values,
// plus the root command's long flags.
func genAutocomplete(r cli.FlaggedCommand) complete.Command {
	ac := complete.Command{
		Flags: map[string]complete.Predictor{
			"-i": complete.PredictSet(opts.InstallValues...),
			"-t": complete.PredictSet(opts.TestValues...),
			"-d": complete.PredictSet(opts.DocValues...),
			"-u": complete.PredictNothing,
			"-c": complete.PredictNothing,
			"-h": complete.PredictNothing,
		},
		GlobalFlags: map[string]complete.Predictor{},
	}

	registerFlags(r, func(f *flag.Flag) {
		n := fmtFlag(f.Name)
		switch f.Name {
		// special case for autocompleting configs
		case "config":
			ac.GlobalFlags[n] = complete.PredictFiles("*.toml")
		default:
			ac.GlobalFlags[n] = complete.PredictNothing
		}
	})

	return ac
}

// handleAutocomplete answers a completion request from the shell. It
// returns false when the process wasn't started for completion.
func (r *rootCmd) handleAutocomplete(fl *flag.FlagSet) bool {
	cmp := complete.New(fl.Name(), genAutocomplete(r))
	return cmp.Complete()
}

func registerFlags(cmd cli.FlaggedCommand, visitFunc func(f *flag.Flag)) {
	// make a fake FlagSet for the command to set the flags on,
	// then we can iterate over them
	set := flag.NewFlagSet("", flag.ContinueOnError)
	cmd.RegisterFlags(set)

	set.VisitAll(visitFunc)
}

func fmtFlag(name string) string {
	if utf8.RuneCountInString(name) > 1 {
		return fmt.Sprintf("--%s", name)
	}

	return fmt.Sprintf("-%s", name)
}
