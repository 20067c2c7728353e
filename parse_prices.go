package folio

var (
	priceTickerCols = []string{"ticker", "symbol", "scrip", "instrument", "isin", "name"}
	priceValueCols  = []string{"price", "ltp", "close", "closing price", "cmp", "nav", "rate", "cloture", "last"}
)

// ParsePrices reads a market-price snapshot (a published sheet or a broker
// bhavcopy-style export) into a ticker-to-price map. Rows with a zero or
// unparseable price are dropped.
func ParsePrices(g Grid) Result {
	h := g.FindHeaderRow("ticker", "price")
	if h < 0 {
		h = g.FindHeaderRow("symbol", "close")
	}
	if h < 0 {
		return failure("no price table found: no header row combines a ticker-like and a price-like column")
	}

	tickerCol := g.ResolveColumn(h, priceTickerCols...)
	valueCol := g.ResolveColumn(h, priceValueCols...)
	if tickerCol < 0 || valueCol < 0 {
		return failure("price header found at row %d but ticker/price columns could not be resolved", h+1)
	}

	prices := make(PriceMap)
	for r := h + 1; r < len(g); r++ {
		ticker := NormalizeTicker(g.cell(r, tickerCol))
		if ticker == "" {
			continue
		}
		price := ParseLocaleNumber(g.cell(r, valueCol))
		if !price.IsPositive() {
			continue
		}
		prices[ticker] = price
	}

	if len(prices) == 0 {
		return failure("price table at row %d produced no positive quotes", h+1)
	}
	return Result{
		OK:      true,
		Message: plural(len(prices), "quote"),
		Prices:  prices,
	}
}

// snapshotCashRow and snapshotCashCol locate the cash figure in the
// portfolio-snapshot export. The position is fixed by the broker's template,
// not by any header.
const (
	snapshotCashRow = 1 // second row
	snapshotCashCol = 6 // seventh column
)

// ParseSnapshot reads a portfolio-snapshot export: a cash figure at a fixed
// cell, then a ticker-to-closing-price table located by header detection.
// The cash figure is reported through the summary patch even when the price
// table itself is empty.
func ParseSnapshot(g Grid) Result {
	var patch *SummaryPatch
	if cash := ParseLocaleNumber(g.cell(snapshotCashRow, snapshotCashCol)); cash.IsPositive() {
		patch = &SummaryPatch{CashBalance: patchValue(cash)}
	}

	res := ParsePrices(g)
	if !res.OK && patch == nil {
		return res
	}
	res.OK = true
	if res.Prices == nil {
		res.Message = "no price table in snapshot, but a cash balance was extracted"
	}
	if patch != nil {
		if res.Summary == nil {
			res.Summary = patch
		} else {
			res.Summary.merge(patch)
		}
	}
	return res
}
