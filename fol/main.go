// Command fol is the portfolio tracker CLI.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/nivesh/folio/cmd"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion runs first: when invoked by the completion hook it
	// prints candidates and exits, otherwise it is a no-op.
	completion().Complete("fol")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	classes := predict.Set{"in-equity", "intl-equity", "mutual-fund", "gold", "cash"}
	docs := predict.Set{"trades", "pnl", "ledger", "dividends", "prices", "snapshot", "foreign-dividends"}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"store":  predict.Dirs("*"),
			"config": predict.Files("*.yaml"),
		},
		Sub: map[string]*complete.Command{
			"import": {
				Flags: map[string]complete.Predictor{"c": classes, "doc": docs},
				Args:  predict.Files("*.csv"),
			},
			"holdings": {Flags: map[string]complete.Predictor{"c": classes, "d": predict.Nothing}},
			"summary":  {Flags: map[string]complete.Predictor{"d": predict.Nothing}},
			"watch": {
				Flags: map[string]complete.Predictor{"c": classes},
				Args:  predict.Set{"list", "add", "rm"},
			},
			"fetch":   {Flags: map[string]complete.Predictor{"c": classes}},
			"assist":  {},
			"export":  {},
			"restore": {},
		},
	}
}
