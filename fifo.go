package folio

import (
	"sort"

	"github.com/shopspring/decimal"
)

// lotEpsilon absorbs floating-point drift in fractional quantities: a lot
// whose remaining quantity falls at or below it is considered consumed.
var lotEpsilon = Q(decimal.NewFromFloat(1e-4))

// lot is a single purchase still (partially) open, owned exclusively by the
// queue of one ticker.
type lot struct {
	Quantity Quantity
	Price    Money // unit cost
}

// Position is the derived state of one ticker after replaying its trades.
type Position struct {
	Ticker string
	// Lots is the open-lot queue, oldest first.
	Lots []lot
	// Open and Invested are recomputed from the final lot queue, so they
	// always agree with it whatever the intermediate arithmetic did.
	Open     Quantity
	Invested Money
	Realized Money
	// LastBuyDate and LastBuyPrice track the most recent purchase; on equal
	// dates the trade seen last in sort order wins.
	LastBuyDate  Date
	LastBuyPrice Money
	// Oversold is the sell quantity that found no open lot to match. The
	// engine drops it silently, as the statements themselves do when a
	// transfer-in predates the export window, but keeps the count so a
	// stricter caller can surface it.
	Oversold Quantity
}

// Attribution is the per-sale performance record, keyed by the id of the
// SELL trade that produced it.
type Attribution struct {
	Realized  Money
	CostBasis Money
}

// Book is the output of a FIFO replay over one asset class's trades.
type Book struct {
	// Realized is the total realized P&L across all tickers.
	Realized Money
	// Invested is the remaining cost basis of all open lots.
	Invested Money
	// Positions maps normalized ticker to its derived position.
	Positions map[string]*Position
	// Sales maps a SELL trade id to its attribution. Only sells that
	// matched at least one lot with positive cost appear.
	Sales map[string]Attribution
}

// NewBook replays an unordered trade list through FIFO lot matching.
//
// Trades are sorted by date ascending, stable with respect to their original
// order on ties. A buy appends a lot to its ticker's queue; a sell consumes
// lots from the front, realizing quantity*(sellPrice-lotPrice) as it goes.
// Selling more than is open drains the queue and stops: see Position.Oversold.
//
// The book is recomputed from scratch on every call; nothing is mutated
// incrementally across evaluations.
func NewBook(trades []Trade) *Book {
	sorted := make([]Trade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	book := &Book{
		Positions: make(map[string]*Position),
		Sales:     make(map[string]Attribution),
	}

	for _, t := range sorted {
		ticker := NormalizeTicker(t.Ticker)
		pos := book.Positions[ticker]
		if pos == nil {
			pos = &Position{Ticker: ticker}
			book.Positions[ticker] = pos
		}

		switch t.Side {
		case Buy:
			pos.Lots = append(pos.Lots, lot{Quantity: t.Quantity, Price: t.Price})
			if pos.LastBuyDate.IsZero() || !t.Date.Before(pos.LastBuyDate) {
				pos.LastBuyDate = t.Date
				pos.LastBuyPrice = t.Price
			}
		case Sell:
			realized, cost, leftover := pos.sell(t.Quantity, t.Price)
			pos.Realized = pos.Realized.Add(realized)
			book.Realized = book.Realized.Add(realized)
			if cost.IsPositive() {
				book.Sales[t.ID] = Attribution{Realized: realized, CostBasis: cost}
			}
			pos.Oversold = pos.Oversold.Add(leftover)
		}
	}

	// Invested capital comes from the final queues, not from running sums.
	for _, pos := range book.Positions {
		for _, l := range pos.Lots {
			pos.Open = pos.Open.Add(l.Quantity)
			pos.Invested = pos.Invested.Add(l.Price.Mul(l.Quantity))
		}
		book.Invested = book.Invested.Add(pos.Invested)
	}

	return book
}

// sell consumes quantity from the front of the lot queue at the given sell
// price. It returns the realized P&L, the cost basis consumed, and whatever
// quantity remained unmatched once the queue emptied.
func (p *Position) sell(quantity Quantity, price Money) (realized, cost Money, leftover Quantity) {
	for len(p.Lots) > 0 && quantity.GreaterThan(lotEpsilon) {
		front := &p.Lots[0]
		matched := quantity.Min(front.Quantity)

		realized = realized.Add(price.Sub(front.Price).Mul(matched))
		cost = cost.Add(front.Price.Mul(matched))
		front.Quantity = front.Quantity.Sub(matched)
		quantity = quantity.Sub(matched)

		if !front.Quantity.GreaterThan(lotEpsilon) {
			p.Lots = p.Lots[1:]
		}
	}
	if quantity.GreaterThan(lotEpsilon) {
		leftover = quantity
	}
	return realized, cost, leftover
}
