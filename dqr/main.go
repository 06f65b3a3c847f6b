package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/reconcile/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion, a no-op outside of completion mode.
	completion := &complete.Command{
		Sub: map[string]*complete.Command{
			"compare": {Flags: map[string]complete.Predictor{
				"t": predict.Set{"historical_ohlc", "dividends", "fundamentals"},
				"n": predict.Nothing,
			}},
			"annotate": {Flags: map[string]complete.Predictor{
				"f":          predict.Nothing,
				"d":          predict.Nothing,
				"cause":      predict.Nothing,
				"status":     predict.Set{"open", "documented"},
				"eodhd":      predict.Nothing,
				"comparator": predict.Nothing,
				"diff":       predict.Nothing,
			}},
			"issues": {Flags: map[string]complete.Predictor{
				"ticker": predict.Nothing,
			}},
			"clear": {Flags: map[string]complete.Predictor{
				"confirm": predict.Nothing,
			}},
			"topic": {Args: predict.Set{"readme", "comparison-policy", "alignment", "annotations"}},
		},
		Flags: map[string]complete.Predictor{
			"eodhd-dir":      predict.Dirs("*"),
			"comparator-dir": predict.Dirs("*"),
			"annotations":    predict.Files("*"),
			"fields":         predict.Files("*.yaml"),
		},
	}
	completion.Complete("dqr")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	known := map[string]bool{"help": true, "flags": true, "commands": true}
	for _, c := range cmd.Commands {
		commander.Register(c, "")
		known[c.Name()] = true
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")

	flag.Parse()

	// Unknown subcommands fall through to dqr-<name> extensions.
	if args := flag.Args(); len(args) > 0 && !known[args[0]] {
		if ran, code := cmd.RunExtension(args[0], args[1:]); ran {
			os.Exit(code)
		}
	}

	os.Exit(int(commander.Execute(context.Background())))
}
