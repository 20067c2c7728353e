package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/nivesh/folio"
	"github.com/nivesh/folio/renderer"
)

type holdingsCmd struct {
	class string
	date  string
}

func (*holdingsCmd) Name() string { return "holdings" }
func (*holdingsCmd) Synopsis() string {
	return "display the open positions and figures of one asset class"
}
func (*holdingsCmd) Usage() string {
	return `fol holdings -c <class> [-d <date>]

  Computes the class's open positions from its imported trades, prices them
  from the latest feed prices, and renders the dashboard: per-holding value,
  unrealized P&L, weight and days held, plus the class totals and XIRR.

  Asset classes: ` + classesHelp() + `

`
}

func (p *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.class, "c", "", "Asset class to report on.")
	f.StringVar(&p.date, "d", "", "Valuation date (defaults to today).")
}

func (p *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	class, err := folio.ParseAssetClass(p.class)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	on := folio.Today()
	if p.date != "" {
		var ok bool
		if on, ok = folio.ParseFlexibleDate(p.date); !ok {
			fmt.Fprintf(os.Stderr, "Error: cannot parse date %q\n", p.date)
			return subcommands.ExitUsageError
		}
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	report, err := classReport(store, class, on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ReportMarkdown(report))
	return subcommands.ExitSuccess
}

// classReport loads every record set of a class and merges them into its
// dashboard report.
func classReport(store *folio.Store, class folio.AssetClass, on folio.Date) (*folio.Report, error) {
	trades, err := store.LoadTrades(class)
	if err != nil {
		return nil, err
	}
	prices, err := store.LoadPrices(class)
	if err != nil {
		return nil, err
	}
	dividends, err := store.LoadDividends(class)
	if err != nil {
		return nil, err
	}
	ledger, err := store.LoadLedger(class)
	if err != nil {
		return nil, err
	}
	summary, err := store.LoadSummary(class)
	if err != nil {
		return nil, err
	}
	return folio.NewReport(class, trades, prices, dividends, ledger, summary, on), nil
}
