package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/nivesh/folio"
	"github.com/nivesh/folio/agent"
	"google.golang.org/genai"
)

type assistCmd struct{}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the portfolio analyst"
}
func (*assistCmd) Usage() string {
	return `fol assist [question]

  Starts an interactive session with the AI analyst, seeded with the trade
  history of every asset class. Requires a GEMINI_API_KEY (flag-free, read
  from the environment or a .env file).

`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var prompts []string
	if f.NArg() > 0 {
		prompts = append(prompts, strings.Join(f.Args(), " "))
	}

	// .env may carry the API key.
	if _, err := LoadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	trades := map[folio.AssetClass][]folio.Trade{}
	for _, class := range folio.AssetClasses {
		t, err := store.LoadTrades(class)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s trades: %v\n", class, err)
			return subcommands.ExitFailure
		}
		if len(t) > 0 {
			trades[class] = t
		}
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst, err := agent.New(ctx, client, trades)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error starting analyst:", err)
		return subcommands.ExitFailure
	}
	if err := analyst.Run(ctx, os.Stdout, os.Stdin, prompts...); err != nil {
		fmt.Fprintln(os.Stderr, "Analyst failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
