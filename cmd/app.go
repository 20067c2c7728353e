// Package cmd implements the CLI application to manage the portfolio books.
package cmd

import (
	"flag"
	"strings"

	"github.com/google/subcommands"
	"github.com/nivesh/folio"
)

// Commands lists every subcommand. A main package registers each of them on
// a commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&importCmd{},
	&holdingsCmd{},
	&summaryCmd{},
	&watchCmd{},
	&fetchCmd{},
	&assistCmd{},
	&exportCmd{},
	&restoreCmd{},
}

// As a CLI application it has a very short lived lifecycle, so it is ok to
// use global variables.

var storeDir = flag.String("store", ".folio", "Path to the folder holding the portfolio record files (JSONL format)")
var configFile = flag.String("config", "folio.yaml", "Path to the configuration file")

// OpenStore opens the application store pointed at by the -store flag.
func OpenStore() (*folio.Store, error) {
	return folio.NewStore(*storeDir)
}

// classesHelp is the class list rendered for usage strings.
func classesHelp() string {
	names := make([]string, 0, len(folio.AssetClasses))
	for _, c := range folio.AssetClasses {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
