package folio

import (
	"strings"

	"github.com/shopspring/decimal"
)

// scanWindow bounds the header and footer scans. Broker statements bury the
// interesting table between preamble (account details, disclaimers) and
// trailing totals, but never more than a few dozen rows of either.
const scanWindow = 50

// Grid is a parsed delimited document: rows of cells, ragged rows allowed.
type Grid [][]string

// SplitDelimited turns raw CSV/TSV-like text into a Grid. The delimiter is
// detected by comparing semicolon and comma frequency on the first line;
// a delimiter inside a quoted field does not split.
func SplitDelimited(text string) Grid {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil
	}

	delim := byte(',')
	if strings.Count(lines[0], ";") > strings.Count(lines[0], ",") {
		delim = ';'
	}

	grid := make(Grid, 0, len(lines))
	for _, line := range lines {
		grid = append(grid, splitQuoted(line, delim))
	}
	return grid
}

// splitQuoted splits a single line on delim, ignoring delimiters that fall
// inside a double-quoted field.
func splitQuoted(line string, delim byte) []string {
	var cells []string
	var b strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			b.WriteByte(c)
		case c == delim && !inQuotes:
			cells = append(cells, b.String())
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	cells = append(cells, b.String())
	return cells
}

// FindHeaderRow scans at most the first 50 rows for one that contains every
// keyword as a substring of the normalized concatenated row text. It returns
// the first qualifying row index, or -1.
func (g Grid) FindHeaderRow(keywords ...string) int {
	limit := min(len(g), scanWindow)
	for r := 0; r < limit; r++ {
		row := NormalizeHeader(strings.Join(g[r], " "))
		found := true
		for _, kw := range keywords {
			if !strings.Contains(row, NormalizeHeader(kw)) {
				found = false
				break
			}
		}
		if found {
			return r
		}
	}
	return -1
}

// FindFooterValue scans the last 50 rows from the bottom up for a cell whose
// normalized text exactly equals one of the label synonyms, then reads up to
// the next 3 cells to its right (skipping blanks) for a positive number.
// The first positive hit while scanning bottom-up wins, so when a sub-total
// and a grand total carry the same label, the last physical occurrence is
// the one reported.
func (g Grid) FindFooterValue(labels ...string) (decimal.Decimal, bool) {
	normalized := make([]string, len(labels))
	for i, l := range labels {
		normalized[i] = NormalizeHeader(l)
	}

	floor := max(len(g)-scanWindow, 0)
	for r := len(g) - 1; r >= floor; r-- {
		row := g[r]
		for c, cell := range row {
			text := NormalizeHeader(cell)
			match := false
			for _, l := range normalized {
				if text == l {
					match = true
					break
				}
			}
			if !match {
				continue
			}
			seen := 0
			for j := c + 1; j < len(row) && seen < 3; j++ {
				if strings.TrimSpace(row[j]) == "" {
					continue
				}
				seen++
				if v := ParseLocaleNumber(row[j]); v.IsPositive() {
					return v, true
				}
			}
		}
	}
	return decimal.Zero, false
}

// ResolveColumn maps a column name to its index in the header row. Each
// candidate is first tried as an exact normalized match; only when no
// candidate matches exactly does a second pass accept a header cell that
// merely contains the candidate. The first candidate to find any match wins.
func (g Grid) ResolveColumn(headerRow int, candidates ...string) int {
	if headerRow < 0 || headerRow >= len(g) {
		return -1
	}
	header := make([]string, len(g[headerRow]))
	for i, cell := range g[headerRow] {
		header[i] = NormalizeHeader(cell)
	}

	for _, cand := range candidates {
		want := NormalizeHeader(cand)
		for i, cell := range header {
			if cell == want {
				return i
			}
		}
	}
	for _, cand := range candidates {
		want := NormalizeHeader(cand)
		for i, cell := range header {
			if want != "" && strings.Contains(cell, want) {
				return i
			}
		}
	}
	return -1
}

// cell returns the trimmed cell at (r, c), or "" when out of range.
func (g Grid) cell(r, c int) string {
	if r < 0 || r >= len(g) || c < 0 || c >= len(g[r]) {
		return ""
	}
	return strings.TrimSpace(g[r][c])
}
