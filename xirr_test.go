package folio

import (
	"math"
	"testing"
	"time"
)

func TestXIRR(t *testing.T) {
	testCases := []struct {
		name  string
		flows []CashFlow
		want  float64
	}{
		{
			name: "ten percent over one year",
			flows: []CashFlow{
				{Date: NewDate(2023, time.January, 1), Amount: -1000},
				{Date: NewDate(2024, time.January, 1), Amount: 1100},
			},
			want: 0.10,
		},
		{
			name: "doubling over two years",
			flows: []CashFlow{
				{Date: NewDate(2022, time.January, 1), Amount: -1000},
				{Date: NewDate(2024, time.January, 1), Amount: 2000},
			},
			// sqrt(2)-1, annualized
			want: 0.4142,
		},
		{
			name: "loss",
			flows: []CashFlow{
				{Date: NewDate(2023, time.January, 1), Amount: -1000},
				{Date: NewDate(2024, time.January, 1), Amount: 800},
			},
			want: -0.20,
		},
		{
			name: "staggered contributions",
			flows: []CashFlow{
				{Date: NewDate(2023, time.January, 1), Amount: -500},
				{Date: NewDate(2023, time.July, 1), Amount: -500},
				{Date: NewDate(2024, time.January, 1), Amount: 1100},
			},
			want: 0.1344,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := XIRR(tc.flows)
			if math.Abs(got-tc.want) > 1e-3 {
				t.Errorf("XIRR() = %.4f, want %.4f", got, tc.want)
			}
		})
	}
}

func TestXIRRNeedsBothSigns(t *testing.T) {
	onlyOut := []CashFlow{
		{Date: NewDate(2023, time.January, 1), Amount: -1000},
		{Date: NewDate(2023, time.June, 1), Amount: -500},
	}
	if got := XIRR(onlyOut); got != 0 {
		t.Errorf("XIRR() with only outflows = %f, want 0", got)
	}
	if got := XIRR(nil); got != 0 {
		t.Errorf("XIRR(nil) = %f, want 0", got)
	}
}

func TestXIRRWithValue(t *testing.T) {
	flows := []CashFlow{
		{Date: NewDate(2023, time.January, 1), Amount: -1000},
	}
	got := XIRRWithValue(flows, 1100, NewDate(2024, time.January, 1))
	if math.Abs(got-0.10) > 1e-3 {
		t.Errorf("XIRRWithValue() = %.4f, want 0.10", got)
	}
	// Without a market value there is still only one sign.
	if got := XIRRWithValue(flows, 0, NewDate(2024, time.January, 1)); got != 0 {
		t.Errorf("XIRRWithValue() without value = %f, want 0", got)
	}
}
