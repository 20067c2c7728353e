package folio

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/shopspring/decimal"
)

// Store persists record sets as JSONL files under a single directory, one
// file per asset class and record kind: "<class>.trades.jsonl",
// "<class>.watchlist.jsonl", and so on. The asset class is the key prefix;
// no state is shared across classes. Saves replace the whole file: the core
// has last-write-wins semantics and no incremental merge.
//
// The format stays human readable and diffable on purpose, so a store
// directory can live in version control.
type Store struct {
	dir string
}

// NewStore opens (creating if needed) a store directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create store directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(class AssetClass, kind string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s.%s.jsonl", class, kind))
}

// storeKinds enumerates every record file kind a class may have. Import
// rejects anything else, since the kind names a file inside the store.
var storeKinds = []string{"trades", "pnl", "watchlist", "dividends", "ledger", "prices", "summary"}

func validKind(kind string) bool {
	for _, k := range storeKinds {
		if kind == k {
			return true
		}
	}
	return false
}

// SaveTrades replaces the persisted trade set of an asset class.
func (s *Store) SaveTrades(class AssetClass, trades []Trade) error {
	return writeJSONL(s.path(class, "trades"), len(trades), func(w io.Writer, i int) error {
		return encodeLine(w, trades[i])
	})
}

// LoadTrades returns the persisted trade set of an asset class. A class
// never imported before yields an empty set, not an error.
func (s *Store) LoadTrades(class AssetClass) ([]Trade, error) {
	var trades []Trade
	err := readJSONL(s.path(class, "trades"), func(line []byte) error {
		var t Trade
		if err := json.Unmarshal(line, &t); err != nil {
			return err
		}
		trades = append(trades, t)
		return nil
	})
	return trades, err
}

// SaveWatchlist replaces the persisted watchlist of an asset class.
func (s *Store) SaveWatchlist(class AssetClass, items []WatchlistItem) error {
	return writeJSONL(s.path(class, "watchlist"), len(items), func(w io.Writer, i int) error {
		return encodeLine(w, items[i])
	})
}

// LoadWatchlist returns the persisted watchlist of an asset class.
func (s *Store) LoadWatchlist(class AssetClass) ([]WatchlistItem, error) {
	var items []WatchlistItem
	err := readJSONL(s.path(class, "watchlist"), func(line []byte) error {
		var it WatchlistItem
		if err := json.Unmarshal(line, &it); err != nil {
			return err
		}
		items = append(items, it)
		return nil
	})
	return items, err
}

// SaveDividends replaces the persisted dividend records of an asset class.
func (s *Store) SaveDividends(class AssetClass, records []DividendRecord) error {
	return writeJSONL(s.path(class, "dividends"), len(records), func(w io.Writer, i int) error {
		return encodeLine(w, records[i])
	})
}

// LoadDividends returns the persisted dividend records of an asset class.
func (s *Store) LoadDividends(class AssetClass) ([]DividendRecord, error) {
	var records []DividendRecord
	err := readJSONL(s.path(class, "dividends"), func(line []byte) error {
		var d DividendRecord
		if err := json.Unmarshal(line, &d); err != nil {
			return err
		}
		records = append(records, d)
		return nil
	})
	return records, err
}

// SavePnL replaces the persisted realized-P&L rows of an asset class.
func (s *Store) SavePnL(class AssetClass, records []PnLRecord) error {
	return writeJSONL(s.path(class, "pnl"), len(records), func(w io.Writer, i int) error {
		return encodeLine(w, records[i])
	})
}

// LoadPnL returns the persisted realized-P&L rows of an asset class.
func (s *Store) LoadPnL(class AssetClass) ([]PnLRecord, error) {
	var records []PnLRecord
	err := readJSONL(s.path(class, "pnl"), func(line []byte) error {
		var r PnLRecord
		if err := json.Unmarshal(line, &r); err != nil {
			return err
		}
		records = append(records, r)
		return nil
	})
	return records, err
}

// SaveLedger replaces the persisted ledger rows of an asset class.
func (s *Store) SaveLedger(class AssetClass, records []LedgerRecord) error {
	return writeJSONL(s.path(class, "ledger"), len(records), func(w io.Writer, i int) error {
		return encodeLine(w, records[i])
	})
}

// LoadLedger returns the persisted ledger rows of an asset class.
func (s *Store) LoadLedger(class AssetClass) ([]LedgerRecord, error) {
	var records []LedgerRecord
	err := readJSONL(s.path(class, "ledger"), func(line []byte) error {
		var r LedgerRecord
		if err := json.Unmarshal(line, &r); err != nil {
			return err
		}
		records = append(records, r)
		return nil
	})
	return records, err
}

// SavePrices replaces the persisted feed prices of an asset class.
func (s *Store) SavePrices(class AssetClass, prices PriceMap) error {
	tickers := make([]string, 0, len(prices))
	for t := range prices {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return writeJSONL(s.path(class, "prices"), len(tickers), func(w io.Writer, i int) error {
		var obj jsonObjectWriter
		obj.Append("ticker", tickers[i])
		obj.Append("price", prices[tickers[i]])
		data, err := obj.MarshalJSON()
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	})
}

// LoadPrices returns the persisted feed prices of an asset class.
func (s *Store) LoadPrices(class AssetClass) (PriceMap, error) {
	prices := PriceMap{}
	err := readJSONL(s.path(class, "prices"), func(line []byte) error {
		var row struct {
			Ticker string          `json:"ticker"`
			Price  decimal.Decimal `json:"price"`
		}
		if err := json.Unmarshal(line, &row); err != nil {
			return err
		}
		prices[NormalizeTicker(row.Ticker)] = row.Price
		return nil
	})
	return prices, err
}

// SaveSummary replaces the persisted footer figures of an asset class.
func (s *Store) SaveSummary(class AssetClass, patch *SummaryPatch) error {
	if patch == nil {
		patch = &SummaryPatch{}
	}
	return writeJSONL(s.path(class, "summary"), 1, func(w io.Writer, _ int) error {
		return encodeLine(w, patch)
	})
}

// LoadSummary returns the persisted footer figures of an asset class, or an
// empty patch when none were saved.
func (s *Store) LoadSummary(class AssetClass) (*SummaryPatch, error) {
	patch := &SummaryPatch{}
	err := readJSONL(s.path(class, "summary"), func(line []byte) error {
		return json.Unmarshal(line, patch)
	})
	return patch, err
}

// MergeSummary folds a parser's summary patch into the persisted figures.
func (s *Store) MergeSummary(class AssetClass, patch *SummaryPatch) error {
	if patch == nil {
		return nil
	}
	prior, err := s.LoadSummary(class)
	if err != nil {
		return err
	}
	prior.merge(patch)
	return s.SaveSummary(class, prior)
}

// Export writes every persisted record of every asset class to w as a
// single backup stream: one JSON object per line, each wrapped with its
// class and kind so Import can route it back.
func (s *Store) Export(w io.Writer) error {
	for _, class := range AssetClasses {
		for _, kind := range storeKinds {
			err := readJSONL(s.path(class, kind), func(line []byte) error {
				var obj jsonObjectWriter
				obj.Append("class", class)
				obj.Append("kind", kind)
				obj.Append("record", json.RawMessage(line))
				data, err := obj.MarshalJSON()
				if err != nil {
					return err
				}
				_, err = w.Write(append(data, '\n'))
				return err
			})
			if err != nil {
				return fmt.Errorf("cannot export %s %s: %w", class, kind, err)
			}
		}
	}
	return nil
}

// Import restores a backup stream written by Export, replacing the current
// contents of every file it mentions.
func (s *Store) Import(r io.Reader) error {
	type entry struct {
		Class  AssetClass      `json:"class"`
		Kind   string          `json:"kind"`
		Record json.RawMessage `json:"record"`
	}

	files := make(map[string][][]byte)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e entry
		if err := json.Unmarshal(line, &e); err != nil {
			return fmt.Errorf("cannot parse backup line %q: %w", string(line), err)
		}
		if _, err := ParseAssetClass(string(e.Class)); err != nil {
			return fmt.Errorf("cannot restore backup: %w", err)
		}
		if !validKind(e.Kind) {
			return fmt.Errorf("cannot restore backup: unknown kind %q", e.Kind)
		}
		path := s.path(e.Class, e.Kind)
		files[path] = append(files[path], append([]byte{}, e.Record...))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading backup: %w", err)
	}

	for path, lines := range files {
		err := writeJSONL(path, len(lines), func(w io.Writer, i int) error {
			_, err := w.Write(append(lines[i], '\n'))
			return err
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func encodeLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// writeJSONL writes n lines to path through a temp-file rename, so a failed
// save never truncates the previous data.
func writeJSONL(path string, n int, write func(w io.Writer, i int) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("cannot create temp file for %q: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for i := 0; i < n; i++ {
		if err := write(w, i); err != nil {
			tmp.Close()
			return fmt.Errorf("cannot write %q: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// readJSONL calls fn for every non-empty line of path. A missing file is
// not an error: it reads as empty.
func readJSONL(path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot open %q: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return fmt.Errorf("cannot parse line of %q: %w", path, err)
		}
	}
	return scanner.Err()
}
