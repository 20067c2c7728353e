package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nivesh/folio"
	"github.com/nivesh/folio/sheet"
	"github.com/shopspring/decimal"
)

type fetchCmd struct {
	class    string
	snapshot bool
	fresh    bool
}

func (*fetchCmd) Name() string { return "fetch" }
func (*fetchCmd) Synopsis() string {
	return "refresh an asset class's prices from its configured sources"
}
func (*fetchCmd) Usage() string {
	return `fol fetch -c <class> [-snapshot] [-fresh]

  Downloads the class's price sheet (the "sheets" section of the config
  file), parses it, and replaces the class's stored prices. Any spot quote
  sources configured for the class (the "quotes" section) are fetched on
  top and win over the sheet.

  Responses are cached for the day; -fresh bypasses the cache.

  Asset classes: ` + classesHelp() + `

`
}

func (p *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.class, "c", "", "Asset class to fetch prices for.")
	f.BoolVar(&p.snapshot, "snapshot", false, "Parse the sheet as an account snapshot (prices plus cash cell).")
	f.BoolVar(&p.fresh, "fresh", false, "Bypass the daily response cache.")
}

func (p *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	class, err := folio.ParseAssetClass(p.class)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	client := sheet.New()
	if p.fresh {
		client = sheet.NewUncached()
	}

	prices, summary, err := collectPrices(client, cfg, class, p.snapshot)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if len(prices) == 0 && summary == nil {
		fmt.Fprintf(os.Stderr, "Error: no price sources configured for %s (see %q)\n", class, *configFile)
		return subcommands.ExitFailure
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	// A summary-only fetch (a cash-only snapshot with no quotes) keeps the
	// previously stored prices.
	if len(prices) > 0 {
		if err := store.SavePrices(class, prices); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving prices: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	if err := store.MergeSummary(class, summary); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving summary: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Fetched %d prices for %s.\n", len(prices), class)
	return subcommands.ExitSuccess
}

// collectPrices gathers the class's prices from its configured sources: the
// price sheet first, then spot quotes on top. A snapshot sheet may carry
// only the cash cell, in which case it contributes a summary and no prices.
func collectPrices(client *sheet.Client, cfg *Config, class folio.AssetClass, snapshot bool) (folio.PriceMap, *folio.SummaryPatch, error) {
	prices := folio.PriceMap{}
	var summary *folio.SummaryPatch

	if addr, ok := cfg.SheetURL(class); ok {
		csv, err := client.FetchCSV(addr)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot fetch price sheet: %w", err)
		}
		grid := folio.SplitDelimited(csv)
		res := folio.ParsePrices(grid)
		if snapshot {
			res = folio.ParseSnapshot(grid)
		}
		if !res.OK {
			return nil, nil, fmt.Errorf("%s", res.Message)
		}
		for ticker, price := range res.Prices {
			prices[ticker] = price
		}
		summary = res.Summary
	}

	// Spot quotes shadow the sheet.
	for ticker, src := range cfg.QuotesFor(class) {
		value, err := client.Quote(src.URL, src.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: quote for %s failed: %v\n", ticker, err)
			continue
		}
		prices[ticker] = decimal.NewFromFloat(value)
	}

	return prices, summary, nil
}
