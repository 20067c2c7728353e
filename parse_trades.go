package folio

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Column synonym lists for the two trade-history layouts. Matching is
// normalized and fuzzy (see Grid.ResolveColumn), so "Trade Date" or "Qty."
// resolve as well as the canonical names.
var (
	tradeDateCols   = []string{"date", "trade date", "order execution time", "datum"}
	tradeTimeCols   = []string{"time", "tijd", "heure"}
	tradeTickerCols = []string{"ticker", "symbol", "instrument", "scrip", "stock"}
	tradeTypeCols   = []string{"type", "side", "buy/sell", "transaction type", "trade type"}
	tradeQtyCols    = []string{"qty", "quantity", "units", "shares", "aantal"}
	tradePriceCols  = []string{"price", "rate", "avg price", "nav", "koers", "cours"}
	tradeNetCols    = []string{"net amount", "net value", "netamount", "totaal", "total", "montant"}
	tradeStatusCols = []string{"status", "order status"}

	tradeProductCols = []string{"product", "produit"}
	tradeFeeCols     = []string{"transaction costs", "transactiekosten", "frais", "charges", "brokerage"}
)

// ParseTradeHistory turns a trade-history statement into Trades. It
// understands two market conventions:
//
//   - the broker-export layout with separate date and time columns, a product
//     name column and a signed quantity whose sign encodes the side, with
//     optional fee columns accumulated into a charges total;
//   - the generic Date/Ticker/Type/Qty/Price layout.
//
// The signed net cash flow comes from an explicit net-amount column when the
// export has one, and is otherwise computed as -(qty*price) for buys and
// +(qty*price) for sells. Rows missing a date, symbol or positive quantity
// and price are skipped silently.
func ParseTradeHistory(g Grid, currency string) Result {
	if h := g.FindHeaderRow("product"); h >= 0 {
		if r := parseBrokerTrades(g, h, currency); r.OK {
			return r
		}
	}

	h := g.FindHeaderRow("date", "price")
	if h < 0 {
		return failure("no trade table found: no row within the first %d contains both a date and a price column", scanWindow)
	}
	return parseGenericTrades(g, h, currency)
}

func parseGenericTrades(g Grid, h int, currency string) Result {
	dateCol := g.ResolveColumn(h, tradeDateCols...)
	tickerCol := g.ResolveColumn(h, tradeTickerCols...)
	typeCol := g.ResolveColumn(h, tradeTypeCols...)
	qtyCol := g.ResolveColumn(h, tradeQtyCols...)
	priceCol := g.ResolveColumn(h, tradePriceCols...)
	if dateCol < 0 || tickerCol < 0 || typeCol < 0 || qtyCol < 0 || priceCol < 0 {
		return failure("trade header found at row %d but date/ticker/type/qty/price columns could not all be resolved", h+1)
	}
	netCol := g.ResolveColumn(h, tradeNetCols...)
	statusCol := g.ResolveColumn(h, tradeStatusCols...)

	var trades []Trade
	for r := h + 1; r < len(g); r++ {
		date, ok := ParseFlexibleDate(g.cell(r, dateCol))
		if !ok {
			continue
		}
		ticker := NormalizeTicker(g.cell(r, tickerCol))
		if ticker == "" {
			continue
		}
		side, ok := parseSide(g.cell(r, typeCol))
		if !ok {
			continue
		}
		qty := ParseLocaleNumber(g.cell(r, qtyCol))
		price := ParseLocaleNumber(g.cell(r, priceCol))
		if !qty.IsPositive() || !price.IsPositive() {
			continue
		}

		net := decimal.Zero
		if netCol >= 0 {
			net = ParseLocaleNumber(g.cell(r, netCol))
		}
		trades = append(trades, newTrade(date, "", ticker, side, qty, price, net, g.cell(r, statusCol), currency))
	}

	if len(trades) == 0 {
		return failure("trade table at row %d produced no rows with a valid date, symbol, quantity and price", h+1)
	}
	return Result{
		OK:      true,
		Message: plural(len(trades), "trade"),
		Trades:  trades,
	}
}

// parseBrokerTrades handles the export with a product column, a signed
// quantity and per-row fees.
func parseBrokerTrades(g Grid, h int, currency string) Result {
	dateCol := g.ResolveColumn(h, tradeDateCols...)
	productCol := g.ResolveColumn(h, tradeProductCols...)
	qtyCol := g.ResolveColumn(h, tradeQtyCols...)
	priceCol := g.ResolveColumn(h, tradePriceCols...)
	if dateCol < 0 || productCol < 0 || qtyCol < 0 || priceCol < 0 {
		return failure("broker header found at row %d but date/product/quantity/price columns could not all be resolved", h+1)
	}
	timeCol := g.ResolveColumn(h, tradeTimeCols...)
	netCol := g.ResolveColumn(h, tradeNetCols...)
	feeCol := g.ResolveColumn(h, tradeFeeCols...)

	var trades []Trade
	charges := decimal.Zero
	for r := h + 1; r < len(g); r++ {
		date, ok := ParseFlexibleDate(g.cell(r, dateCol))
		if !ok {
			continue
		}
		ticker := NormalizeTicker(g.cell(r, productCol))
		if ticker == "" {
			continue
		}
		qty := ParseLocaleNumber(g.cell(r, qtyCol))
		price := ParseLocaleNumber(g.cell(r, priceCol))
		if qty.IsZero() || !price.IsPositive() {
			continue
		}

		// The sign of the quantity encodes the side.
		side := Buy
		if qty.IsNegative() {
			side = Sell
			qty = qty.Neg()
		}

		net := decimal.Zero
		if netCol >= 0 {
			net = ParseLocaleNumber(g.cell(r, netCol))
		}
		if feeCol >= 0 {
			charges = charges.Add(ParseLocaleNumber(g.cell(r, feeCol)).Abs())
		}
		trades = append(trades, newTrade(date, g.cell(r, timeCol), ticker, side, qty, price, net, "", currency))
	}

	if len(trades) == 0 {
		return failure("broker table at row %d produced no usable rows", h+1)
	}
	res := Result{
		OK:      true,
		Message: plural(len(trades), "trade"),
		Trades:  trades,
	}
	if charges.IsPositive() {
		res.Summary = &SummaryPatch{Charges: patchValue(charges)}
	}
	return res
}

func newTrade(date Date, tm, ticker string, side Side, qty, price, net decimal.Decimal, status, currency string) Trade {
	if net.IsZero() {
		net = qty.Mul(price)
		if side == Buy {
			net = net.Neg()
		}
	} else if side == Buy && net.IsPositive() || side == Sell && net.IsNegative() {
		// Exports disagree on the sign convention of the net column; the
		// side is authoritative.
		net = net.Neg()
	}
	return Trade{
		ID:       NewTradeID(),
		Date:     date,
		Time:     tm,
		Ticker:   ticker,
		Side:     side,
		Quantity: Q(qty),
		Price:    M(price, currency),
		Net:      M(net, currency),
		Status:   status,
	}
}

// parseSide maps the free-text type cell to a side.
func parseSide(text string) (Side, bool) {
	t := NormalizeHeader(text)
	switch {
	case strings.HasPrefix(t, "b") || strings.HasPrefix(t, "achat"):
		return Buy, true
	case strings.HasPrefix(t, "s") || strings.HasPrefix(t, "vente"):
		return Sell, true
	}
	return "", false
}

func plural(n int, what string) string {
	if n == 1 {
		return fmt.Sprintf("imported 1 %s", what)
	}
	return fmt.Sprintf("imported %d %ss", n, what)
}
