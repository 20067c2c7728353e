package folio

var (
	pnlChargesLabels = []string{"total charges", "charges", "total expenses"}
	pnlNetLabels     = []string{"net p&l", "net realised p&l", "net profit", "total p&l"}

	pnlSymbolCols     = []string{"symbol", "scrip", "instrument", "stock name"}
	pnlBuyQtyCols     = []string{"buy qty", "buy quantity", "qty bought"}
	pnlSellQtyCols    = []string{"sell qty", "sell quantity", "qty sold"}
	pnlAvgPriceCols   = []string{"buy avg", "avg price", "buy average", "average price"}
	pnlRealizedCols   = []string{"realized p&l", "realised p&l", "realized profit", "booked p&l"}
	pnlUnrealizedCols = []string{"unrealized p&l", "unrealised p&l", "unrealized profit", "open p&l"}
)

// ParsePnL reads a broker profit-and-loss report: footer figures for total
// charges and net P&L, then the per-symbol table. Rows whose symbol cell is
// empty or a "Total" line are dropped.
func ParsePnL(g Grid, currency string) Result {
	patch := &SummaryPatch{}
	if v, ok := g.FindFooterValue(pnlChargesLabels...); ok {
		patch.Charges = patchValue(v)
	}
	if v, ok := g.FindFooterValue(pnlNetLabels...); ok {
		patch.NetPnL = patchValue(v)
	}

	h := g.FindHeaderRow("symbol", "qty")
	if h < 0 {
		h = g.FindHeaderRow("scrip", "qty")
	}
	if h < 0 {
		if patch.Charges == nil && patch.NetPnL == nil {
			return failure("no P&L table found and no footer totals either")
		}
		return Result{
			OK:      true,
			Message: "no per-symbol P&L table found; footer totals extracted",
			Summary: patch,
		}
	}

	symbolCol := g.ResolveColumn(h, pnlSymbolCols...)
	if symbolCol < 0 {
		return failure("P&L header found at row %d but no symbol column could be resolved", h+1)
	}
	buyQtyCol := g.ResolveColumn(h, pnlBuyQtyCols...)
	sellQtyCol := g.ResolveColumn(h, pnlSellQtyCols...)
	avgPriceCol := g.ResolveColumn(h, pnlAvgPriceCols...)
	realizedCol := g.ResolveColumn(h, pnlRealizedCols...)
	unrealizedCol := g.ResolveColumn(h, pnlUnrealizedCols...)

	var records []PnLRecord
	for r := h + 1; r < len(g); r++ {
		symbol := g.cell(r, symbolCol)
		if symbol == "" || isPnLFooterRow(symbol) {
			continue
		}
		records = append(records, PnLRecord{
			Symbol:     NormalizeTicker(symbol),
			BuyQty:     Q(ParseLocaleNumber(g.cell(r, buyQtyCol))),
			SellQty:    Q(ParseLocaleNumber(g.cell(r, sellQtyCol))),
			AvgPrice:   M(ParseLocaleNumber(g.cell(r, avgPriceCol)), currency),
			Realized:   M(ParseLocaleNumber(g.cell(r, realizedCol)), currency),
			Unrealized: M(ParseLocaleNumber(g.cell(r, unrealizedCol)), currency),
		})
	}

	if len(records) == 0 && patch.Charges == nil && patch.NetPnL == nil {
		return failure("P&L table at row %d produced no symbol rows", h+1)
	}
	return Result{
		OK:      true,
		Message: plural(len(records), "P&L row"),
		PnL:     records,
		Summary: patch,
	}
}

// isPnLFooterRow tells a totals line from a symbol row: the labels that feed
// the footer extraction must not reappear as phantom symbols.
func isPnLFooterRow(symbol string) bool {
	s := NormalizeHeader(symbol)
	if s == "total" {
		return true
	}
	for _, l := range pnlChargesLabels {
		if s == l {
			return true
		}
	}
	for _, l := range pnlNetLabels {
		if s == l {
			return true
		}
	}
	return false
}
