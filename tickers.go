package folio

import "strings"

// NormalizeTicker is the grouping key of the whole engine: statements are
// inconsistent about case and padding, so every ticker comparison goes
// through it.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// prefixThreshold is the minimum shared prefix for the fuzzy price lookup.
const prefixThreshold = 3

// LookupPrice resolves a statement ticker against a price feed in two
// stages: an exact match on the normalized ticker first, then a fallback for
// feeds that disagree on exchange-suffix conventions (RELIANCE vs
// RELIANCE.NS): the shorter of the two symbols must be a whole prefix of the
// longer and at least 3 characters long. Among several fallback candidates
// the longest shared prefix wins, ties broken by the lexically smallest feed
// ticker so the lookup stays deterministic.
func LookupPrice(prices PriceMap, ticker string) (Money, bool) {
	t := NormalizeTicker(ticker)
	if v, ok := prices[t]; ok {
		return M(v, ""), true
	}

	best := ""
	bestLen := 0
	for key := range prices {
		n := commonPrefixLen(t, key)
		if n < prefixThreshold || n < len(t) && n < len(key) {
			continue // neither symbol is a whole prefix of the other
		}
		if n > bestLen || n == bestLen && (best == "" || key < best) {
			best, bestLen = key, n
		}
	}
	if best == "" {
		return Money{}, false
	}
	return M(prices[best], ""), true
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
