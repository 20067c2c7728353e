// Package renderer formats the core's reports as markdown, ready to be
// printed raw or through a terminal markdown renderer.
package renderer

import (
	"fmt"
	"strings"

	"github.com/nivesh/folio"
)

// mdRenderer accumulates markdown output.
type mdRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *mdRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// ReportMarkdown renders one asset class's dashboard summary.
func ReportMarkdown(report *folio.Report) string {
	r := &mdRenderer{Builder: &strings.Builder{}}

	r.Printf("# %s holdings as of %s\n\n", report.Class, report.Date)

	if len(report.Holdings) == 0 {
		r.Printf("No open positions.\n\n")
	} else {
		r.Printf("| Ticker | Qty | Invested | Avg Cost | Price | Value | Unrealized | Return | Weight | Days |\n")
		r.Printf("|:---|---:|---:|---:|---:|---:|---:|---:|---:|---:|\n")
		for _, h := range report.Holdings {
			price := h.Price.String()
			if !h.Live {
				price += " *" // stale: most recent buy price, no feed match
			}
			r.Printf("| %s | %s | %s | %s | %s | %s | %s | %.1f%% | %.1f%% | %d |\n",
				h.Ticker, h.Quantity, h.Invested, h.AvgCost, price, h.MarketValue,
				h.Unrealized.SignedString(), h.ReturnPct, h.Weight, h.DaysHeld)
		}
		r.Printf("\n")
	}

	r.Printf("| | |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Market Value | %s |\n", report.MarketValue)
	r.Printf("| Invested | %s |\n", report.Invested)
	r.Printf("| Unrealized P&L | %s |\n", report.Unrealized.SignedString())
	r.Printf("| Realized P&L | %s |\n", report.Realized.SignedString())
	if !report.Charges.IsZero() {
		r.Printf("| Charges | %s |\n", report.Charges)
	}
	if !report.Cash.IsZero() {
		r.Printf("| Cash | %s |\n", report.Cash)
	}
	if !report.Dividends.IsZero() {
		r.Printf("| Dividends | %s |\n", report.Dividends)
	}
	r.Printf("| XIRR | %.2f%% |\n", report.XIRRPct)
	r.Printf("\n")

	return r.String()
}

// ConsolidatedMarkdown renders the all-classes overview: one summary line
// per asset class. Values stay in each class's own currency; consolidation
// across currencies is deliberately not attempted.
func ConsolidatedMarkdown(reports []*folio.Report) string {
	r := &mdRenderer{Builder: &strings.Builder{}}

	r.Printf("# Portfolio Overview\n\n")
	r.Printf("| Class | Holdings | Market Value | Invested | Unrealized | Realized | XIRR |\n")
	r.Printf("|:---|---:|---:|---:|---:|---:|---:|\n")
	for _, report := range reports {
		r.Printf("| %s | %d | %s | %s | %s | %s | %.2f%% |\n",
			report.Class, len(report.Holdings), report.MarketValue, report.Invested,
			report.Unrealized.SignedString(), report.Realized.SignedString(), report.XIRRPct)
	}
	r.Printf("\n")

	return r.String()
}

// WatchlistMarkdown renders one asset class's watchlist.
func WatchlistMarkdown(class folio.AssetClass, items []folio.WatchlistItem) string {
	r := &mdRenderer{Builder: &strings.Builder{}}

	r.Printf("# %s watchlist\n\n", class)
	if len(items) == 0 {
		r.Printf("Empty.\n")
		return r.String()
	}

	r.Printf("| Ticker | Entry | Intrinsic | Supports | Link |\n")
	r.Printf("|:---|---:|---:|:---|:---|\n")
	for _, it := range items {
		supports := make([]string, 0, len(it.Supports))
		for _, s := range it.Supports {
			supports = append(supports, s.String())
		}
		r.Printf("| %s | %s | %s | %s | %s |\n",
			it.Ticker, it.EntryPrice, it.Intrinsic, strings.Join(supports, ", "), it.Link)
	}
	r.Printf("\n")

	return r.String()
}

// ImportMarkdown renders the outcome of one import attempt.
func ImportMarkdown(class folio.AssetClass, doc string, res folio.Result) string {
	r := &mdRenderer{Builder: &strings.Builder{}}

	status := "ok"
	if !res.OK {
		status = "failed"
	}
	r.Printf("**%s / %s**: %s. %s\n", class, doc, status, res.Message)
	return r.String()
}
