package folio

import (
	"testing"
	"time"
)

func buy(d Date, ticker string, qty, price float64) Trade {
	return Trade{ID: NewTradeID(), Date: d, Ticker: ticker, Side: Buy,
		Quantity: Q(qty), Price: M(price, "INR"), Net: M(-qty*price, "INR")}
}

func sell(d Date, ticker string, qty, price float64) Trade {
	return Trade{ID: NewTradeID(), Date: d, Ticker: ticker, Side: Sell,
		Quantity: Q(qty), Price: M(price, "INR"), Net: M(qty*price, "INR")}
}

func TestNewBookFIFO(t *testing.T) {
	trades := []Trade{
		buy(NewDate(2024, time.January, 1), "TCS", 100, 10),
		buy(NewDate(2024, time.February, 1), "TCS", 50, 12),
		sell(NewDate(2024, time.March, 1), "TCS", 120, 15),
	}
	book := NewBook(trades)

	// 100 @ (15-10) + 20 @ (15-12) = 500 + 60
	if !book.Realized.Equal(M(560, "INR")) {
		t.Errorf("Realized = %s, want INR 560", book.Realized)
	}
	pos := book.Positions["TCS"]
	if pos == nil {
		t.Fatal("no position for TCS")
	}
	if !pos.Open.Equal(Q(30)) {
		t.Errorf("Open = %s, want 30", pos.Open)
	}
	// The 30 shares left all come from the 12-rupee lot.
	if !pos.Invested.Equal(M(360, "INR")) {
		t.Errorf("Invested = %s, want INR 360", pos.Invested)
	}
	if len(pos.Lots) != 1 {
		t.Fatalf("lot queue has %d lots, want 1", len(pos.Lots))
	}

	// The sale's attribution covers the consumed cost basis.
	attr, ok := book.Sales[trades[2].ID]
	if !ok {
		t.Fatal("no attribution for the sell trade")
	}
	if !attr.Realized.Equal(M(560, "INR")) {
		t.Errorf("attribution Realized = %s, want INR 560", attr.Realized)
	}
	// 100*10 + 20*12
	if !attr.CostBasis.Equal(M(1240, "INR")) {
		t.Errorf("attribution CostBasis = %s, want INR 1240", attr.CostBasis)
	}
	if !pos.Oversold.IsZero() {
		t.Errorf("Oversold = %s, want 0", pos.Oversold)
	}
}

func TestNewBookSortsByDate(t *testing.T) {
	// The sell arrives first in the slice but last in time.
	trades := []Trade{
		sell(NewDate(2024, time.March, 1), "INFY", 10, 20),
		buy(NewDate(2024, time.January, 1), "INFY", 10, 15),
	}
	book := NewBook(trades)
	if !book.Realized.Equal(M(50, "INR")) {
		t.Errorf("Realized = %s, want INR 50", book.Realized)
	}
	if !book.Positions["INFY"].Oversold.IsZero() {
		t.Error("sorted replay should leave nothing oversold")
	}
}

func TestNewBookOversell(t *testing.T) {
	trades := []Trade{
		buy(NewDate(2024, time.January, 1), "TCS", 10, 100),
		sell(NewDate(2024, time.February, 1), "TCS", 25, 110),
	}
	book := NewBook(trades)
	pos := book.Positions["TCS"]

	// Only the 10 matched shares realize anything; the 15 extra vanish.
	if !pos.Realized.Equal(M(100, "INR")) {
		t.Errorf("Realized = %s, want INR 100", pos.Realized)
	}
	if !pos.Oversold.Equal(Q(15)) {
		t.Errorf("Oversold = %s, want 15", pos.Oversold)
	}
	if !pos.Open.IsZero() {
		t.Errorf("Open = %s, want 0", pos.Open)
	}
}

func TestNewBookFractionalResidue(t *testing.T) {
	// Mutual fund units: selling everything but a dust residue below the
	// epsilon closes the lot.
	trades := []Trade{
		buy(NewDate(2024, time.January, 1), "PPFAS", 103.2345, 55),
		sell(NewDate(2024, time.February, 1), "PPFAS", 103.23445, 60),
	}
	book := NewBook(trades)
	pos := book.Positions["PPFAS"]
	if len(pos.Lots) != 0 {
		t.Errorf("lot queue has %d lots, want 0 (residue below epsilon)", len(pos.Lots))
	}
	if !pos.Open.IsZero() {
		t.Errorf("Open = %s, want 0", pos.Open)
	}
}

func TestNewBookLastBuyTracking(t *testing.T) {
	trades := []Trade{
		buy(NewDate(2024, time.January, 1), "TCS", 10, 100),
		buy(NewDate(2024, time.March, 1), "TCS", 10, 120),
		buy(NewDate(2024, time.February, 1), "TCS", 10, 110),
	}
	pos := NewBook(trades).Positions["TCS"]
	if pos.LastBuyDate != NewDate(2024, time.March, 1) {
		t.Errorf("LastBuyDate = %s, want 2024-03-01", pos.LastBuyDate)
	}
	if !pos.LastBuyPrice.Equal(M(120, "INR")) {
		t.Errorf("LastBuyPrice = %s, want INR 120", pos.LastBuyPrice)
	}
}
