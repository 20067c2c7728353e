package folio

var (
	dividendTotalLabels = []string{"total dividend", "total dividends", "net dividend", "dividend total"}

	dividendDateCols   = []string{"date", "ex-date", "payment date", "credit date"}
	dividendSymbolCols = []string{"symbol", "scrip", "security", "stock", "company"}
	dividendAmountCols = []string{"net dividend amount", "dividend amount", "net amount", "amount", "dividend"}

	// dividendHeaderTries are the header keyword combinations, in priority
	// order, that locate a per-payment dividend table across broker formats.
	dividendHeaderTries = [][]string{
		{"symbol", "dividend"},
		{"scrip", "dividend"},
		{"date", "dividend"},
		{"symbol", "amount"},
	}
)

// importedDividendSymbol labels the synthetic aggregate record built from a
// footer total when no per-payment table could be found.
const importedDividendSymbol = "IMPORTED-TOTAL"

// ParseDividends reads a dividend report. It tries several header keyword
// combinations in priority order to find a per-payment table; when none
// matches but the statement carries a footer dividend total, it degrades
// gracefully to a single aggregate record dated today rather than failing.
func ParseDividends(g Grid, currency string) Result {
	patch := &SummaryPatch{}
	if v, ok := g.FindFooterValue(dividendTotalLabels...); ok {
		patch.TotalDividend = patchValue(v)
	}

	h := -1
	for _, try := range dividendHeaderTries {
		if h = g.FindHeaderRow(try...); h >= 0 {
			break
		}
	}

	var dividends []DividendRecord
	if h >= 0 {
		dateCol := g.ResolveColumn(h, dividendDateCols...)
		symbolCol := g.ResolveColumn(h, dividendSymbolCols...)
		amountCol := g.ResolveColumn(h, dividendAmountCols...)
		if dateCol >= 0 && symbolCol >= 0 && amountCol >= 0 {
			for r := h + 1; r < len(g); r++ {
				date, ok := ParseFlexibleDate(g.cell(r, dateCol))
				if !ok {
					continue
				}
				symbol := NormalizeTicker(g.cell(r, symbolCol))
				amount := ParseLocaleNumber(g.cell(r, amountCol))
				if symbol == "" || NormalizeHeader(symbol) == "total" || !amount.IsPositive() {
					continue
				}
				dividends = append(dividends, DividendRecord{
					Date:   date,
					Symbol: symbol,
					Amount: M(amount, currency),
				})
			}
		}
	}

	if len(dividends) > 0 {
		return Result{
			OK:        true,
			Message:   plural(len(dividends), "dividend"),
			Dividends: dividends,
			Summary:   patch,
		}
	}

	// Degrade gracefully: a footer total with no parseable rows becomes one
	// synthetic aggregate payment dated today.
	if patch.TotalDividend != nil {
		return Result{
			OK:      true,
			Message: "no per-payment table found; imported the footer dividend total as one aggregate record",
			Dividends: []DividendRecord{{
				Date:     Today(),
				Symbol:   importedDividendSymbol,
				Amount:   M(*patch.TotalDividend, currency),
				Imported: true,
			}},
			Summary: patch,
		}
	}

	return failure("no dividend table or footer total found")
}
