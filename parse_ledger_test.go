package folio

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

const cashLedger = `Ledger statement

Date,Particulars,Debit,Credit,Balance
01-04-2023,Opening Balance,0,0,"10,000.00"
05-04-2023,Payment to exchange,32005.00,0,"-22,005.00"
12-06-2023,Funds added,0,50000,"27,995.00"
,,,,
Closing Balance,,,,"27,995.00"
`

func TestParseLedger(t *testing.T) {
	res := ParseLedger(SplitDelimited(cashLedger), "INR")
	if !res.OK {
		t.Fatalf("ParseLedger() failed: %s", res.Message)
	}
	if len(res.Ledger) != 3 {
		t.Fatalf("imported %d ledger rows, want 3", len(res.Ledger))
	}

	row := res.Ledger[1]
	if row.Date != NewDate(2023, time.April, 5) {
		t.Errorf("row date = %s, want 2023-04-05", row.Date)
	}
	if row.Particulars != "Payment to exchange" {
		t.Errorf("particulars = %q", row.Particulars)
	}
	if !row.Debit.Equal(M(32005, "INR")) {
		t.Errorf("debit = %s, want INR 32005", row.Debit)
	}
	if !row.Balance.Equal(M(-22005, "INR")) {
		t.Errorf("balance = %s, want INR -22005", row.Balance)
	}

	if res.Summary == nil || res.Summary.CashBalance == nil {
		t.Fatal("no closing balance extracted")
	}
	if res.Summary.CashBalance.String() != "27995" {
		t.Errorf("closing balance = %s, want 27995", res.Summary.CashBalance)
	}
}

func TestParseLedgerNothingFound(t *testing.T) {
	if res := ParseLedger(SplitDelimited("x,y\n1,2"), "INR"); res.OK {
		t.Fatal("ParseLedger() succeeded on a grid with no ledger")
	}
}

const intlLedger = `Datum;Tijd;Valutadatum;Product;ISIN;Omschrijving;FX;Mutatie;;Saldo;
02-01-2024;09:00;02-01-2024;APPLE INC;US0378331005;Dividende;;USD;10,00;USD;10,00
02-01-2024;09:00;02-01-2024;APPLE INC;US0378331005;Dividendbelasting;;USD;-1,50;USD;8,50
05-03-2024;10:00;05-03-2024;EQUINOR;NO0010096985;Dividende;;NOK;200,00;NOK;200,00
06-03-2024;10:00;06-03-2024;AIRBUS;NL0000235190;Dividende;;EUR;12,00;EUR;12,00
`

func TestExtractForeignDividends(t *testing.T) {
	res := ExtractForeignDividends(SplitDelimited(intlLedger), nil)
	if !res.OK {
		t.Fatalf("ExtractForeignDividends() failed: %s", res.Message)
	}
	// Dividendbelasting (withholding) must not match the exact literal.
	if len(res.Dividends) != 3 {
		t.Fatalf("extracted %d dividends, want 3", len(res.Dividends))
	}

	apple := res.Dividends[0]
	if apple.Symbol != "APPLE INC" {
		t.Errorf("symbol = %q, want APPLE INC", apple.Symbol)
	}
	// 10 USD at the fixed 0.92 rate.
	if !apple.Amount.Equal(M(9.2, "EUR")) {
		t.Errorf("amount = %s, want EUR 9.20", apple.Amount)
	}

	equinor := res.Dividends[1]
	if !equinor.Amount.Equal(M(17, "EUR")) {
		t.Errorf("NOK amount = %s, want EUR 17 (200 * 0.085)", equinor.Amount)
	}

	airbus := res.Dividends[2]
	if !airbus.Amount.Equal(M(12, "EUR")) {
		t.Errorf("EUR amount = %s, want EUR 12 unchanged", airbus.Amount)
	}
}

func TestExtractForeignDividendsCustomRates(t *testing.T) {
	rates := func(currency string) (decimal.Decimal, bool) {
		if currency == "USD" {
			return decimal.NewFromFloat(0.5), true
		}
		return decimal.Decimal{}, false
	}
	res := ExtractForeignDividends(SplitDelimited(intlLedger), rates)
	if !res.OK {
		t.Fatalf("ExtractForeignDividends() failed: %s", res.Message)
	}
	if !res.Dividends[0].Amount.Equal(M(5, "EUR")) {
		t.Errorf("USD amount = %s, want EUR 5 at the custom rate", res.Dividends[0].Amount)
	}
	// Unknown currencies convert 1:1.
	if !res.Dividends[1].Amount.Equal(M(200, "EUR")) {
		t.Errorf("NOK amount = %s, want EUR 200 (unknown currency, 1:1)", res.Dividends[1].Amount)
	}
}
