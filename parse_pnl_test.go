package folio

import "testing"

const pnlStatement = `P&L Statement for FY 2023-24

Symbol,Buy Qty,Sell Qty,Buy Avg,Realized P&L,Unrealized P&L
TCS,10,5,3200.50,3497.50,1500.00
INFY,20,0,1250.00,0,2300.00
Total,30,5,,3497.50,3800.00
,,,,,
Total Charges,,485.60
Net Realised P&L,,"3,011.90"
`

func TestParsePnL(t *testing.T) {
	res := ParsePnL(SplitDelimited(pnlStatement), "INR")
	if !res.OK {
		t.Fatalf("ParsePnL() failed: %s", res.Message)
	}
	// The Total line is not a symbol.
	if len(res.PnL) != 2 {
		t.Fatalf("imported %d P&L rows, want 2", len(res.PnL))
	}

	tcs := res.PnL[0]
	if tcs.Symbol != "TCS" {
		t.Errorf("first row symbol = %q, want TCS", tcs.Symbol)
	}
	if !tcs.BuyQty.Equal(Q(10)) || !tcs.SellQty.Equal(Q(5)) {
		t.Errorf("TCS quantities = %s/%s, want 10/5", tcs.BuyQty, tcs.SellQty)
	}
	if !tcs.Realized.Equal(M(3497.50, "INR")) {
		t.Errorf("TCS realized = %s, want INR 3497.50", tcs.Realized)
	}

	if res.Summary == nil {
		t.Fatal("no summary patch")
	}
	if res.Summary.Charges == nil || res.Summary.Charges.String() != "485.6" {
		t.Errorf("charges = %v, want 485.6", res.Summary.Charges)
	}
	if res.Summary.NetPnL == nil || res.Summary.NetPnL.String() != "3011.9" {
		t.Errorf("net P&L = %v, want 3011.9", res.Summary.NetPnL)
	}
}

func TestParsePnLFooterOnly(t *testing.T) {
	text := `Some preamble
Total Charges,,120.50
`
	res := ParsePnL(SplitDelimited(text), "INR")
	if !res.OK {
		t.Fatalf("ParsePnL() failed: %s", res.Message)
	}
	if len(res.PnL) != 0 {
		t.Errorf("imported %d rows, want 0", len(res.PnL))
	}
	if res.Summary == nil || res.Summary.Charges == nil || res.Summary.Charges.String() != "120.5" {
		t.Error("footer charges not extracted")
	}
}

func TestParsePnLNothingFound(t *testing.T) {
	res := ParsePnL(SplitDelimited("a,b\nc,d"), "INR")
	if res.OK {
		t.Fatal("ParsePnL() succeeded on a grid with neither table nor footers")
	}
}
