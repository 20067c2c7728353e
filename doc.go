// Package folio reconciles broker-exported CSV statements into point-in-time
// holdings and performance metrics for a personal investment portfolio. It is
// designed to be local-first and forgiving of the wildly inconsistent exports
// real brokers produce.
//
// The core functionalities include:
//   - Tabular Extraction: turning raw delimited text into a grid, locating
//     header rows and footer summary figures by keyword, and resolving column
//     names against synonym lists tolerant of locale and diacritics.
//   - Statement Parsers: per document-type walkers that emit typed records
//     (trades, P&L rows, ledger rows, dividends, price quotes) and never fail
//     on a malformed row, only on absent structure.
//   - FIFO Accounting: a lot-matching engine producing realized P&L, open
//     lots, per-sale attribution, and invested-capital totals.
//   - XIRR: the money-weighted annualized return of an irregular cash-flow
//     series, solved with Newton-Raphson.
//   - Reporting: a per-asset-class holdings view merging positions, live or
//     fallback prices, and footer-extracted summary figures.
//
// This package serves as the foundational logic for the `fol` command-line
// tool; persistence, rendering, remote fetching and the AI analyst live in
// their own packages and only consume what this one returns.
package folio
