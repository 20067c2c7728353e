package folio

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetClass tags one of the five independently-tracked books. Each class
// owns a full copy of every record type: trades, watchlist, figures. There
// is no cross-class entity sharing; aggregation only happens in reports.
type AssetClass string

const (
	IndianEquity AssetClass = "in-equity"
	IntlEquity   AssetClass = "intl-equity"
	MutualFund   AssetClass = "mutual-fund"
	GoldETF      AssetClass = "gold"
	Cash         AssetClass = "cash"
)

// AssetClasses lists every class, in reporting order.
var AssetClasses = []AssetClass{IndianEquity, IntlEquity, MutualFund, GoldETF, Cash}

// ParseAssetClass resolves a user-supplied class name.
func ParseAssetClass(s string) (AssetClass, error) {
	for _, c := range AssetClasses {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown asset class %q (want one of %v)", s, AssetClasses)
}

// Currency returns the currency the class's statements are denominated in.
func (c AssetClass) Currency() string {
	if c == IntlEquity {
		return "EUR"
	}
	return "INR"
}

// Side of a trade.
type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Trade is a single execution from a trade-history statement. Immutable once
// created; an import replaces the whole trade set of its asset class.
type Trade struct {
	ID       string   `json:"id"`
	Date     Date     `json:"date"`
	Time     string   `json:"time,omitempty"` // optional HH:MM:SS from exports with a time column
	Ticker   string   `json:"ticker"`
	Side     Side     `json:"side"`
	Quantity Quantity `json:"quantity"`
	Price    Money    `json:"price"`
	// Net is the signed cash flow of the trade: negative for a buy,
	// positive for a sell. Taken from an explicit net-amount column when the
	// export has one, computed from quantity and price otherwise.
	Net    Money  `json:"net"`
	Status string `json:"status,omitempty"`
}

// NewTradeID mints the random id a parsed trade row gets. Ids are the only
// part of a record that differs between two imports of the same file.
func NewTradeID() string { return uuid.NewString() }

// PnLRecord is one symbol row of a broker profit-and-loss report.
type PnLRecord struct {
	Symbol     string   `json:"symbol"`
	BuyQty     Quantity `json:"buyQty"`
	SellQty    Quantity `json:"sellQty"`
	AvgPrice   Money    `json:"avgPrice"`
	Realized   Money    `json:"realized"`
	Unrealized Money    `json:"unrealized"`
}

// LedgerRecord is one row of a cash ledger statement.
type LedgerRecord struct {
	Date        Date   `json:"date"`
	Particulars string `json:"particulars,omitempty"`
	Debit       Money  `json:"debit"`
	Credit      Money  `json:"credit"`
	Balance     Money  `json:"balance"`
}

// DividendRecord is a single dividend payment. Synthetic records (built from
// a footer total when no per-payment table could be found) carry
// Imported=true and today's date.
type DividendRecord struct {
	Date     Date   `json:"date"`
	Symbol   string `json:"symbol"`
	Amount   Money  `json:"amount"`
	Imported bool   `json:"imported,omitempty"`
}

// WatchlistItem is a user-authored research note on a symbol, persisted
// independently of trade data.
type WatchlistItem struct {
	ID         string `json:"id"`
	Ticker     string `json:"ticker"`
	EntryPrice Money  `json:"entryPrice"`
	Intrinsic  Money  `json:"intrinsic"`
	Link       string `json:"link,omitempty"`
	// Supports holds up to three price levels the user watches.
	Supports []Money `json:"supports,omitempty"`
}

// maxSupports bounds the support levels a watchlist item carries.
const maxSupports = 3

// NewWatchlistItem creates an item with a fresh id, capping supports at three.
func NewWatchlistItem(ticker string, entry, intrinsic Money, link string, supports ...Money) WatchlistItem {
	if len(supports) > maxSupports {
		supports = supports[:maxSupports]
	}
	return WatchlistItem{
		ID:         uuid.NewString(),
		Ticker:     NormalizeTicker(ticker),
		EntryPrice: entry,
		Intrinsic:  intrinsic,
		Link:       link,
		Supports:   supports,
	}
}

// PriceMap maps an uppercased ticker to its latest price.
type PriceMap map[string]decimal.Decimal

// SummaryPatch carries the footer-level figures a parser extracted alongside
// (or instead of) row records. Fields are pointers: nil means the statement
// had no such figure and prior state should be left alone.
type SummaryPatch struct {
	Charges       *decimal.Decimal `json:"charges,omitempty"`
	NetPnL        *decimal.Decimal `json:"netPnL,omitempty"`
	CashBalance   *decimal.Decimal `json:"cashBalance,omitempty"`
	TotalDividend *decimal.Decimal `json:"totalDividend,omitempty"`
}

// merge folds other into p, other's fields winning where set.
func (p *SummaryPatch) merge(other *SummaryPatch) {
	if other == nil {
		return
	}
	if other.Charges != nil {
		p.Charges = other.Charges
	}
	if other.NetPnL != nil {
		p.NetPnL = other.NetPnL
	}
	if other.CashBalance != nil {
		p.CashBalance = other.CashBalance
	}
	if other.TotalDividend != nil {
		p.TotalDividend = other.TotalDividend
	}
}

func patchValue(v decimal.Decimal) *decimal.Decimal { return &v }

// Result is what every statement parser returns. A parser never errors on
// malformed data: rows it cannot make sense of are skipped, and structure it
// cannot find at all yields OK=false with a human-readable message and no
// records, leaving the caller's prior state intact.
type Result struct {
	OK      bool
	Message string

	Trades    []Trade
	PnL       []PnLRecord
	Ledger    []LedgerRecord
	Dividends []DividendRecord
	Prices    PriceMap

	Summary *SummaryPatch
}

func failure(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

// MarshalJSON keeps the trade's key order stable for JSONL persistence.
func (t Trade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Optional("time", t.Time)
	w.Append("ticker", t.Ticker)
	w.Append("side", t.Side)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	w.Append("net", t.Net)
	w.Optional("status", t.Status)
	return w.MarshalJSON()
}

func (t *Trade) UnmarshalJSON(bytes []byte) error {
	type plain Trade // avoid recursing into this method
	var temp plain
	if err := json.Unmarshal(bytes, &temp); err != nil {
		return err
	}
	*t = Trade(temp)
	return nil
}

// Equal reports element-wise equality with other, ignoring the randomly
// generated id. Two imports of identical CSV content compare equal under it.
func (t Trade) Equal(other Trade) bool {
	return t.Date == other.Date &&
		t.Time == other.Time &&
		t.Ticker == other.Ticker &&
		t.Side == other.Side &&
		t.Quantity.Equal(other.Quantity) &&
		t.Price.Equal(other.Price) &&
		t.Net.Equal(other.Net) &&
		t.Status == other.Status
}
