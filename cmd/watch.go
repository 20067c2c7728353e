package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/nivesh/folio"
	"github.com/nivesh/folio/renderer"
)

type watchCmd struct {
	class     string
	entry     float64
	intrinsic float64
	link      string
	supports  string
}

func (*watchCmd) Name() string { return "watch" }
func (*watchCmd) Synopsis() string {
	return "manage the watchlist of an asset class"
}
func (*watchCmd) Usage() string {
	return `fol watch -c <class> list
fol watch -c <class> [-entry <price>] [-value <price>] [-link <url>] [-supports <p1,p2,p3>] add <ticker>
fol watch -c <class> rm <ticker>

  Maintains the class's list of candidate tickers: an entry price target, an
  intrinsic value estimate, an optional research link, and up to three
  support levels.

  Asset classes: ` + classesHelp() + `

Usage Examples:
# Watch a stock with an entry target and two supports.
$ fol watch -c in-equity -entry 450 -supports 430,410 add TATAPOWER

`
}

func (p *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.class, "c", "", "Asset class of the watchlist.")
	f.Float64Var(&p.entry, "entry", 0, "Entry price target.")
	f.Float64Var(&p.intrinsic, "value", 0, "Intrinsic value estimate.")
	f.StringVar(&p.link, "link", "", "Research link.")
	f.StringVar(&p.supports, "supports", "", "Comma-separated support levels (up to three).")
}

func (p *watchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	class, err := folio.ParseAssetClass(p.class)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: expected one of: list, add <ticker>, rm <ticker>")
		return subcommands.ExitUsageError
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	items, err := store.LoadWatchlist(class)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	switch verb := f.Arg(0); verb {
	case "list":
		printMarkdown(renderer.WatchlistMarkdown(class, items))
		return subcommands.ExitSuccess

	case "add":
		if f.NArg() != 2 {
			fmt.Fprintln(os.Stderr, "Error: add expects a ticker")
			return subcommands.ExitUsageError
		}
		currency := class.Currency()
		var supports []folio.Money
		for _, s := range strings.Split(p.supports, ",") {
			if s = strings.TrimSpace(s); s != "" {
				supports = append(supports, folio.M(folio.ParseLocaleNumber(s), currency))
			}
		}
		item := folio.NewWatchlistItem(f.Arg(1),
			folio.M(p.entry, currency), folio.M(p.intrinsic, currency),
			p.link, supports...)

		// Re-adding a watched ticker replaces the old item.
		items = removeTicker(items, item.Ticker)
		items = append(items, item)
		if err := store.SaveWatchlist(class, items); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Watching %s in %s.\n", item.Ticker, class)
		return subcommands.ExitSuccess

	case "rm":
		if f.NArg() != 2 {
			fmt.Fprintln(os.Stderr, "Error: rm expects a ticker")
			return subcommands.ExitUsageError
		}
		ticker := folio.NormalizeTicker(f.Arg(1))
		kept := removeTicker(items, ticker)
		if len(kept) == len(items) {
			fmt.Fprintf(os.Stderr, "Error: %s is not on the %s watchlist\n", ticker, class)
			return subcommands.ExitFailure
		}
		if err := store.SaveWatchlist(class, kept); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Stopped watching %s in %s.\n", ticker, class)
		return subcommands.ExitSuccess

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown watch action %q\n", verb)
		return subcommands.ExitUsageError
	}
}

func removeTicker(items []folio.WatchlistItem, ticker string) []folio.WatchlistItem {
	kept := items[:0:0]
	for _, it := range items {
		if it.Ticker != ticker {
			kept = append(kept, it)
		}
	}
	return kept
}
