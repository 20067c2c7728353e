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

type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string { return "summary" }
func (*summaryCmd) Synopsis() string {
	return "display a one-line overview of every asset class"
}
func (*summaryCmd) Usage() string {
	return `fol summary [-d <date>]

  Renders one summary line per asset class: market value, invested amount,
  unrealized and realized P&L, and XIRR. Each class stays in its own
  currency.

`
}

func (p *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.date, "d", "", "Valuation date (defaults to today).")
}

func (p *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var reports []*folio.Report
	for _, class := range folio.AssetClasses {
		report, err := classReport(store, class, on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s records: %v\n", class, err)
			return subcommands.ExitFailure
		}
		reports = append(reports, report)
	}

	printMarkdown(renderer.ConsolidatedMarkdown(reports))
	return subcommands.ExitSuccess
}
