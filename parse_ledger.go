package folio

import "github.com/shopspring/decimal"

var (
	ledgerClosingLabels = []string{"closing balance", "net balance", "total"}

	ledgerDateCols        = []string{"date", "posting date", "datum"}
	ledgerParticularsCols = []string{"particulars", "narration", "description", "omschrijving", "voucher type"}
	ledgerDebitCols       = []string{"debit", "dr", "withdrawal"}
	ledgerCreditCols      = []string{"credit", "cr", "deposit"}
	ledgerBalanceCols     = []string{"balance", "net balance", "running balance", "saldo"}
)

// ParseLedger reads a cash-ledger statement: a footer closing-balance figure
// and the per-row debit/credit/balance table. The footer figure is preferred
// as the cash balance; when the statement has none, the reporting layer
// falls back to the balance of the most recent ledger row.
func ParseLedger(g Grid, currency string) Result {
	patch := &SummaryPatch{}
	if v, ok := g.FindFooterValue(ledgerClosingLabels...); ok {
		patch.CashBalance = patchValue(v)
	}

	h := g.FindHeaderRow("date", "balance")
	if h < 0 {
		if patch.CashBalance == nil {
			return failure("no ledger table found and no closing balance either")
		}
		return Result{
			OK:      true,
			Message: "no ledger rows found; closing balance extracted",
			Summary: patch,
		}
	}

	dateCol := g.ResolveColumn(h, ledgerDateCols...)
	balanceCol := g.ResolveColumn(h, ledgerBalanceCols...)
	if dateCol < 0 || balanceCol < 0 {
		return failure("ledger header found at row %d but date/balance columns could not be resolved", h+1)
	}
	particularsCol := g.ResolveColumn(h, ledgerParticularsCols...)
	debitCol := g.ResolveColumn(h, ledgerDebitCols...)
	creditCol := g.ResolveColumn(h, ledgerCreditCols...)

	var records []LedgerRecord
	for r := h + 1; r < len(g); r++ {
		date, ok := ParseFlexibleDate(g.cell(r, dateCol))
		if !ok {
			continue
		}
		records = append(records, LedgerRecord{
			Date:        date,
			Particulars: g.cell(r, particularsCol),
			Debit:       M(ParseLocaleNumber(g.cell(r, debitCol)), currency),
			Credit:      M(ParseLocaleNumber(g.cell(r, creditCol)), currency),
			Balance:     M(ParseLocaleNumber(g.cell(r, balanceCol)), currency),
		})
	}

	if len(records) == 0 && patch.CashBalance == nil {
		return failure("ledger table at row %d produced no dated rows", h+1)
	}
	return Result{
		OK:      true,
		Message: plural(len(records), "ledger row"),
		Ledger:  records,
		Summary: patch,
	}
}

// RateTable converts an amount in a statement currency to the base currency.
// The reported bool is false when the currency is unknown, in which case the
// caller assumes 1:1.
type RateTable func(currency string) (decimal.Decimal, bool)

// DefaultRates is the fixed conversion table to EUR used for foreign
// dividend rows. Rates are deliberately static: these payments are small and
// the statement does not say on which day the broker converted.
func DefaultRates(currency string) (decimal.Decimal, bool) {
	switch currency {
	case "USD":
		return decimal.NewFromFloat(0.92), true
	case "NOK":
		return decimal.NewFromFloat(0.085), true
	case "SEK":
		return decimal.NewFromFloat(0.088), true
	case "GBP":
		return decimal.NewFromFloat(1.17), true
	case "EUR":
		return decimal.NewFromInt(1), true
	}
	return decimal.Decimal{}, false
}

// dividendLiteral is the exact description the international broker prints
// on a dividend ledger row. The match is deliberately exact, case and accent
// included: "Dividendbelasting" (the withholding row) must not match.
const dividendLiteral = "Dividende"

// descriptionOffsets: in this broker's ledger the product sits right after
// the date/time columns and the currency code sits in the column before the
// amount. These offsets are part of the export template, so they are fixed
// rather than resolved by synonym.
const (
	intlProductOffset  = 3
	intlCurrencyOffset = 7
	intlAmountOffset   = 8
)

// ExtractForeignDividends filters an international broker ledger for rows
// whose description column is exactly the localized dividend literal, reads
// the amount and its currency code, and converts to the base currency with
// the supplied rate table (DefaultRates when nil; unknown currencies are
// assumed 1:1).
func ExtractForeignDividends(g Grid, rates RateTable) Result {
	if rates == nil {
		rates = DefaultRates
	}

	h := g.FindHeaderRow("datum", "saldo")
	if h < 0 {
		h = g.FindHeaderRow("date", "description")
	}
	if h < 0 {
		return failure("no international ledger table found")
	}

	dateCol := g.ResolveColumn(h, ledgerDateCols...)
	descCol := g.ResolveColumn(h, ledgerParticularsCols...)
	if dateCol < 0 {
		dateCol = 0
	}
	if descCol < 0 {
		descCol = dateCol + intlProductOffset + 2
	}

	var dividends []DividendRecord
	for r := h + 1; r < len(g); r++ {
		if g.cell(r, descCol) != dividendLiteral {
			continue
		}
		date, ok := ParseFlexibleDate(g.cell(r, dateCol))
		if !ok {
			continue
		}
		symbol := NormalizeTicker(g.cell(r, dateCol+intlProductOffset))
		currency := NormalizeTicker(g.cell(r, dateCol+intlCurrencyOffset))
		amount := ParseLocaleNumber(g.cell(r, dateCol+intlAmountOffset))
		if symbol == "" || !amount.IsPositive() {
			continue
		}

		rate, known := rates(currency)
		if !known {
			rate = decimal.NewFromInt(1)
		}
		dividends = append(dividends, DividendRecord{
			Date:   date,
			Symbol: symbol,
			Amount: M(amount.Mul(rate), "EUR"),
		})
	}

	if len(dividends) == 0 {
		return failure("no %q rows found in the international ledger", dividendLiteral)
	}
	return Result{
		OK:        true,
		Message:   plural(len(dividends), "foreign dividend"),
		Dividends: dividends,
	}
}
