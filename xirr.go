package folio

import "math"

// CashFlow is one dated flow of an irregular series: negative for money put
// in, positive for money taken out.
type CashFlow struct {
	Date   Date
	Amount float64
}

// Newton-Raphson guards. The solver deliberately has no bisection fallback:
// a series it cannot converge on yields 0 (or the last estimate), and the
// reporting layer discards anything non-finite before display.
const (
	xirrGuess         = 0.1
	xirrMaxIterations = 50
	xirrTolerance     = 1e-6
	xirrFlatSlope     = 1e-8
	xirrDivergence    = 1000.0
)

// XIRR computes the money-weighted annualized return of a cash-flow series
// as a fraction (0.10 for 10%). It requires at least one positive and one
// negative flow and returns 0 otherwise: an empty or one-sided series has no
// meaningful rate, and 0 is the neutral default every caller can display.
func XIRR(flows []CashFlow) float64 {
	var hasPositive, hasNegative bool
	for _, f := range flows {
		if f.Amount > 0 {
			hasPositive = true
		}
		if f.Amount < 0 {
			hasNegative = true
		}
	}
	if !hasPositive || !hasNegative {
		return 0
	}

	// Years are measured from the earliest flow.
	earliest := flows[0].Date
	for _, f := range flows[1:] {
		if f.Date.Before(earliest) {
			earliest = f.Date
		}
	}
	years := make([]float64, len(flows))
	for i, f := range flows {
		years[i] = float64(f.Date.Sub(earliest)) / 365.0
	}

	rate := xirrGuess
	for range xirrMaxIterations {
		var npv, derivative float64
		for i, f := range flows {
			denom := math.Pow(1+rate, years[i])
			npv += f.Amount / denom
			derivative -= years[i] * f.Amount / (denom * (1 + rate))
		}
		if math.Abs(derivative) < xirrFlatSlope {
			break // flat slope, Newton cannot progress
		}
		next := rate - npv/derivative
		if math.Abs(next) > xirrDivergence {
			return 0
		}
		if math.Abs(next-rate) < xirrTolerance {
			return next
		}
		rate = next
	}
	return rate
}

// XIRRWithValue appends the current market value as a terminal positive
// inflow dated on, then solves. This is how an open portfolio's trades get a
// money-weighted return: everything still held is treated as withdrawn today.
func XIRRWithValue(flows []CashFlow, marketValue float64, on Date) float64 {
	if marketValue > 0 {
		flows = append(append([]CashFlow{}, flows...), CashFlow{Date: on, Amount: marketValue})
	}
	return XIRR(flows)
}
