package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "write a full backup of every asset class to stdout" }
func (*exportCmd) Usage() string {
	return `fol export > backup.jsonl

  Streams every stored record of every asset class to stdout as one JSONL
  backup, suitable for "fol restore".

`
}

func (*exportCmd) SetFlags(_ *flag.FlagSet) {}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.Export(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type restoreCmd struct{}

func (*restoreCmd) Name() string     { return "restore" }
func (*restoreCmd) Synopsis() string { return "restore a backup stream from stdin" }
func (*restoreCmd) Usage() string {
	return `fol restore < backup.jsonl

  Reads a backup stream written by "fol export" and replaces the contents
  of every record file it mentions.

`
}

func (*restoreCmd) SetFlags(_ *flag.FlagSet) {}

func (c *restoreCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := store.Import(os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(os.Stderr, "Restore complete.")
	return subcommands.ExitSuccess
}
