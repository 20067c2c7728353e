package folio

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Holding is the reporting projection of one open position.
type Holding struct {
	Ticker   string   `json:"ticker"`
	Quantity Quantity `json:"quantity"`
	Invested Money    `json:"invested"`
	// AvgCost is the invested amount spread over the open quantity.
	AvgCost Money `json:"avgCost"`
	Price   Money `json:"price"`
	// Live is false when no feed price resolved (even fuzzily) and the most
	// recent buy price stood in.
	Live        bool    `json:"live"`
	MarketValue Money   `json:"marketValue"`
	Unrealized  Money   `json:"unrealized"`
	ReturnPct   float64 `json:"returnPct"`
	// Weight is this holding's share of the class's market value, in percent.
	Weight float64 `json:"weight"`
	// DaysHeld counts from the most recent buy to the report date.
	DaysHeld int `json:"daysHeld"`
}

// Report is the per-asset-class dashboard summary.
type Report struct {
	Class    AssetClass `json:"class"`
	Date     Date       `json:"date"`
	Holdings []Holding  `json:"holdings"`

	Invested    Money `json:"invested"`
	MarketValue Money `json:"marketValue"`
	Unrealized  Money `json:"unrealized"`
	Realized    Money `json:"realized"`
	Charges     Money `json:"charges"`
	Cash        Money `json:"cash"`
	Dividends   Money `json:"dividends"`
	// XIRRPct is the money-weighted annualized return in percent, 0 when
	// the solver had nothing to work with or failed to converge.
	XIRRPct float64 `json:"xirrPct"`
}

// NewReport merges one asset class's records into its dashboard summary,
// evaluated at the reference date on. Pricing is two-stage per holding:
// feed price (exact then fuzzy ticker match) with the most recent buy price
// as fallback. Footer-extracted figures are used where row-level data is
// absent or smaller, per figure, independently.
//
// The computation is pure: it holds no state between calls, so several
// asset classes can be evaluated concurrently by simply calling it with
// different inputs.
func NewReport(class AssetClass, trades []Trade, prices PriceMap, dividends []DividendRecord, ledger []LedgerRecord, summary *SummaryPatch, on Date) *Report {
	currency := class.Currency()
	book := NewBook(trades)

	report := &Report{
		Class:    class,
		Date:     on,
		Invested: book.Invested.In(currency),
		Realized: book.Realized.In(currency),
	}
	report.MarketValue = M(0, currency)

	tickers := make([]string, 0, len(book.Positions))
	for ticker := range book.Positions {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		pos := book.Positions[ticker]
		if !pos.Open.GreaterThan(lotEpsilon) {
			continue
		}

		price, live := LookupPrice(prices, ticker)
		if !live {
			price = pos.LastBuyPrice
		}
		price = price.In(currency)

		invested := pos.Invested.In(currency)
		marketValue := price.Mul(pos.Open)
		unrealized := marketValue.Sub(invested)

		h := Holding{
			Ticker:      ticker,
			Quantity:    pos.Open,
			Invested:    invested,
			AvgCost:     invested.Div(pos.Open),
			Price:       price,
			Live:        live,
			MarketValue: marketValue,
			Unrealized:  unrealized,
		}
		if invested.IsPositive() {
			h.ReturnPct = unrealized.AsFloat() / invested.AsFloat() * 100
		}
		if !pos.LastBuyDate.IsZero() {
			h.DaysHeld = on.Sub(pos.LastBuyDate)
		}
		report.Holdings = append(report.Holdings, h)
		report.MarketValue = report.MarketValue.Add(marketValue)
	}
	report.Unrealized = report.MarketValue.Sub(report.Invested)

	if total := report.MarketValue.AsFloat(); total > 0 {
		for i := range report.Holdings {
			report.Holdings[i].Weight = report.Holdings[i].MarketValue.AsFloat() / total * 100
		}
	}

	report.Charges = figureMoney(summaryCharges(summary), currency)
	report.Cash = figureMoney(cashFigure(summary, ledger), currency)
	report.Dividends = figureMoney(dividendFigure(summary, dividends), currency)

	report.XIRRPct = xirrPercent(trades, report.MarketValue.AsFloat(), on)

	return report
}

// xirrPercent runs the solver over the trades' net cash flows with the
// market value as terminal inflow, discarding non-finite results.
func xirrPercent(trades []Trade, marketValue float64, on Date) float64 {
	if len(trades) == 0 {
		return 0
	}
	flows := make([]CashFlow, 0, len(trades))
	for _, t := range trades {
		flows = append(flows, CashFlow{Date: t.Date, Amount: t.Net.AsFloat()})
	}
	rate := XIRRWithValue(flows, marketValue, on)
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0
	}
	return rate * 100
}

func figureMoney(v decimal.Decimal, currency string) Money {
	return M(v, currency)
}

func summaryCharges(summary *SummaryPatch) decimal.Decimal {
	if summary == nil || summary.Charges == nil {
		return decimal.Zero
	}
	return *summary.Charges
}

// cashFigure prefers the footer-extracted balance and falls back to the
// balance of the most recent ledger row.
func cashFigure(summary *SummaryPatch, ledger []LedgerRecord) decimal.Decimal {
	if summary != nil && summary.CashBalance != nil {
		return *summary.CashBalance
	}
	latest := decimal.Zero
	var latestDate Date
	for _, row := range ledger {
		if latestDate.IsZero() || !row.Date.Before(latestDate) {
			latestDate = row.Date
			latest = row.Balance.Amount()
		}
	}
	return latest
}

// dividendFigure takes the larger of the footer total and the row-level sum:
// either side may be incomplete, but neither overstates.
func dividendFigure(summary *SummaryPatch, dividends []DividendRecord) decimal.Decimal {
	sum := decimal.Zero
	for _, d := range dividends {
		sum = sum.Add(d.Amount.Amount())
	}
	if summary != nil && summary.TotalDividend != nil && summary.TotalDividend.GreaterThan(sum) {
		return *summary.TotalDividend
	}
	return sum
}
