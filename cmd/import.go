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

type importCmd struct {
	class string
	doc   string
}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "import a broker statement export (CSV) into one asset class"
}
func (*importCmd) Usage() string {
	return `fol import -c <class> -doc <type> <file.csv>

  Parses a broker statement export and replaces the matching record set of
  the asset class. Footer figures found in the statement (charges, net P&L,
  cash balance, dividend totals) are merged into the class summary.

  Document types:
    trades             trade history table
    pnl                realized P&L statement
    ledger             cash ledger
    dividends          dividend statement
    prices             price table
    snapshot           account snapshot (prices plus cash balance cell)
    foreign-dividends  foreign cash ledger, dividend rows only

  Asset classes: ` + classesHelp() + `

Usage Examples:
# Import an equity trade history.
$ fol import -c in-equity -doc trades tradebook.csv

`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.class, "c", "", "Asset class to import into.")
	f.StringVar(&p.doc, "doc", "", "Document type of the statement.")
}

func (p *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one statement file is expected")
		return subcommands.ExitUsageError
	}
	class, err := folio.ParseAssetClass(p.class)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading statement %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	grid := folio.SplitDelimited(string(data))

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	res, err := parseDocument(p.doc, grid, class, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if !res.OK {
		fmt.Fprintf(os.Stderr, "Import failed: %s\n", res.Message)
		return subcommands.ExitFailure
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := applyResult(store, class, res); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving records: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ImportMarkdown(class, p.doc, res))
	return subcommands.ExitSuccess
}

// parseDocument dispatches the statement grid to the matching parser. The
// class currency stamps every amount the parser yields.
func parseDocument(doc string, grid folio.Grid, class folio.AssetClass, cfg *Config) (folio.Result, error) {
	currency := class.Currency()
	switch doc {
	case "trades":
		return folio.ParseTradeHistory(grid, currency), nil
	case "pnl":
		return folio.ParsePnL(grid, currency), nil
	case "ledger":
		return folio.ParseLedger(grid, currency), nil
	case "dividends":
		return folio.ParseDividends(grid, currency), nil
	case "prices":
		return folio.ParsePrices(grid), nil
	case "snapshot":
		return folio.ParseSnapshot(grid), nil
	case "foreign-dividends":
		return folio.ExtractForeignDividends(grid, cfg.RateTable()), nil
	default:
		return folio.Result{}, fmt.Errorf("unknown document type %q", doc)
	}
}

// applyResult stores whatever record sets the parser produced. Each set
// replaces the class's previous one; footer figures merge instead, so a
// trades import never wipes the charges a P&L import found.
func applyResult(store *folio.Store, class folio.AssetClass, res folio.Result) error {
	if res.Trades != nil {
		if err := store.SaveTrades(class, res.Trades); err != nil {
			return err
		}
	}
	if res.PnL != nil {
		if err := store.SavePnL(class, res.PnL); err != nil {
			return err
		}
	}
	if res.Ledger != nil {
		if err := store.SaveLedger(class, res.Ledger); err != nil {
			return err
		}
	}
	if res.Dividends != nil {
		if err := store.SaveDividends(class, res.Dividends); err != nil {
			return err
		}
	}
	if res.Prices != nil {
		if err := store.SavePrices(class, res.Prices); err != nil {
			return err
		}
	}
	return store.MergeSummary(class, res.Summary)
}
