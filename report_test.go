package folio

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewReport(t *testing.T) {
	trades := []Trade{
		buy(NewDate(2023, time.April, 1), "TCS", 10, 3000),
		buy(NewDate(2023, time.June, 1), "INFY", 20, 1200),
		sell(NewDate(2024, time.January, 10), "TCS", 5, 3600),
	}
	feed := prices(map[string]float64{"TCS": 3800, "INFY": 1300})
	on := NewDate(2024, time.March, 31)

	report := NewReport(IndianEquity, trades, feed, nil, nil, nil, on)

	if len(report.Holdings) != 2 {
		t.Fatalf("report has %d holdings, want 2", len(report.Holdings))
	}

	// Holdings come out sorted by ticker.
	infy, tcs := report.Holdings[0], report.Holdings[1]
	if infy.Ticker != "INFY" || tcs.Ticker != "TCS" {
		t.Fatalf("holdings order = %s, %s; want INFY, TCS", infy.Ticker, tcs.Ticker)
	}

	if !tcs.Quantity.Equal(Q(5)) {
		t.Errorf("TCS open = %s, want 5", tcs.Quantity)
	}
	if !tcs.AvgCost.Equal(M(3000, "INR")) {
		t.Errorf("TCS avg cost = %s, want INR 3000", tcs.AvgCost)
	}
	if !tcs.Live {
		t.Error("TCS has a feed price and must be live")
	}
	if !tcs.MarketValue.Equal(M(19000, "INR")) {
		t.Errorf("TCS market value = %s, want INR 19000", tcs.MarketValue)
	}
	// 5 shares left of the 3000-rupee lot.
	if !tcs.Unrealized.Equal(M(4000, "INR")) {
		t.Errorf("TCS unrealized = %s, want INR 4000", tcs.Unrealized)
	}
	if tcs.DaysHeld != on.Sub(NewDate(2023, time.April, 1)) {
		t.Errorf("TCS days held = %d", tcs.DaysHeld)
	}

	// 5 @ (3600-3000)
	if !report.Realized.Equal(M(3000, "INR")) {
		t.Errorf("realized = %s, want INR 3000", report.Realized)
	}
	if !report.MarketValue.Equal(M(45000, "INR")) {
		t.Errorf("market value = %s, want INR 45000 (19000 + 26000)", report.MarketValue)
	}
	if !report.Invested.Equal(M(39000, "INR")) {
		t.Errorf("invested = %s, want INR 39000", report.Invested)
	}

	wantWeight := 26000.0 / 45000.0 * 100
	if math.Abs(infy.Weight-wantWeight) > 1e-9 {
		t.Errorf("INFY weight = %f, want %f", infy.Weight, wantWeight)
	}

	if report.XIRRPct == 0 {
		t.Error("a profitable book must have a non-zero XIRR")
	}
}

// A ticker absent from the feed is priced at its most recent buy.
func TestNewReportStalePriceFallback(t *testing.T) {
	trades := []Trade{buy(NewDate(2024, time.January, 1), "SGBDEC31", 4, 6200)}
	report := NewReport(GoldETF, trades, nil, nil, nil, nil, NewDate(2024, time.February, 1))

	if len(report.Holdings) != 1 {
		t.Fatalf("report has %d holdings, want 1", len(report.Holdings))
	}
	h := report.Holdings[0]
	if h.Live {
		t.Error("holding without a feed price must not be live")
	}
	if !h.Price.Equal(M(6200, "INR")) {
		t.Errorf("fallback price = %s, want the last buy price INR 6200", h.Price)
	}
	if !h.Unrealized.IsZero() {
		t.Errorf("unrealized at the buy price = %s, want 0", h.Unrealized)
	}
}

func TestNewReportFigures(t *testing.T) {
	ledger := []LedgerRecord{
		{Date: NewDate(2024, time.January, 1), Balance: M(5000, "INR")},
		{Date: NewDate(2024, time.March, 1), Balance: M(7500, "INR")},
	}
	dividends := []DividendRecord{
		{Date: NewDate(2024, time.February, 1), Symbol: "TCS", Amount: M(300, "INR")},
		{Date: NewDate(2024, time.March, 1), Symbol: "INFY", Amount: M(200, "INR")},
	}
	on := NewDate(2024, time.March, 31)

	// No footer figures at all: cash falls back to the latest ledger
	// balance, dividends to the row sum.
	report := NewReport(IndianEquity, nil, nil, dividends, ledger, nil, on)
	if !report.Cash.Equal(M(7500, "INR")) {
		t.Errorf("cash = %s, want the latest ledger balance INR 7500", report.Cash)
	}
	if !report.Dividends.Equal(M(500, "INR")) {
		t.Errorf("dividends = %s, want the row sum INR 500", report.Dividends)
	}

	// Footer figures win when present (cash) or larger (dividends).
	summary := &SummaryPatch{
		Charges:       patchValue(decimal.NewFromInt(450)),
		CashBalance:   patchValue(decimal.NewFromInt(9000)),
		TotalDividend: patchValue(decimal.NewFromInt(800)),
	}
	report = NewReport(IndianEquity, nil, nil, dividends, ledger, summary, on)
	if !report.Charges.Equal(M(450, "INR")) {
		t.Errorf("charges = %s, want INR 450", report.Charges)
	}
	if !report.Cash.Equal(M(9000, "INR")) {
		t.Errorf("cash = %s, want the footer balance INR 9000", report.Cash)
	}
	if !report.Dividends.Equal(M(800, "INR")) {
		t.Errorf("dividends = %s, want the larger footer total INR 800", report.Dividends)
	}

	// A footer total smaller than the row sum does not shrink the figure.
	summary.TotalDividend = patchValue(decimal.NewFromInt(100))
	report = NewReport(IndianEquity, nil, nil, dividends, ledger, summary, on)
	if !report.Dividends.Equal(M(500, "INR")) {
		t.Errorf("dividends = %s, want the row sum INR 500", report.Dividends)
	}
}

func TestNewReportClosedPositionsExcluded(t *testing.T) {
	trades := []Trade{
		buy(NewDate(2024, time.January, 1), "TCS", 10, 3000),
		sell(NewDate(2024, time.February, 1), "TCS", 10, 3500),
	}
	report := NewReport(IndianEquity, trades, nil, nil, nil, nil, NewDate(2024, time.March, 1))
	if len(report.Holdings) != 0 {
		t.Errorf("report has %d holdings, want 0 for a fully closed book", len(report.Holdings))
	}
	if !report.Realized.Equal(M(5000, "INR")) {
		t.Errorf("realized = %s, want INR 5000", report.Realized)
	}
}

func TestAssetClassCurrency(t *testing.T) {
	if c := IntlEquity.Currency(); c != "EUR" {
		t.Errorf("intl-equity currency = %s, want EUR", c)
	}
	for _, class := range []AssetClass{IndianEquity, MutualFund, GoldETF, Cash} {
		if c := class.Currency(); c != "INR" {
			t.Errorf("%s currency = %s, want INR", class, c)
		}
	}
}
