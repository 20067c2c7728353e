package folio

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// ParseLocaleNumber extracts a number from a CSV cell, tolerating the
// formatting quirks of broker exports: surrounding quotes, thousands
// separators in either the standard (1,234.56) or European (1.234,56)
// convention, stray currency symbols, and accounting-style parentheses for
// negatives. It returns zero for empty or unparseable input, never an error:
// downstream row filters decide whether a zero is acceptable.
func ParseLocaleNumber(text string) decimal.Decimal {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', ' ', ' ':
			return -1
		}
		return r
	}, s)

	// Accounting notation: (123.45) means -123.45.
	negative := false
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		negative = true
		s = s[1 : len(s)-1]
	}

	// Keep only what could be part of a number.
	s = strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '-' || r == '.' || r == ',' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return decimal.Zero
	}

	lastComma := strings.LastIndexByte(s, ',')
	lastDot := strings.LastIndexByte(s, '.')
	if lastComma >= 0 && (lastDot < 0 || lastComma > lastDot) {
		// European convention: dot groups thousands, comma is the decimal mark.
		s = strings.ReplaceAll(s, ".", "")
		lastComma = strings.LastIndexByte(s, ',')
		s = strings.ReplaceAll(s[:lastComma], ",", "") + "." + s[lastComma+1:]
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return v.Neg()
	}
	return v
}

// NormalizeHeader lowers, trims and strips diacritics from a header cell so
// that "Clôture" matches the synonym "cloture". Statement headers come in
// whatever locale the broker ships, so all header and label comparisons in
// this package go through it.
func NormalizeHeader(text string) string {
	decomposed := norm.NFD.String(strings.ToLower(text))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // combining mark left over from the decomposition
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
