package cmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nivesh/folio"
	"github.com/nivesh/folio/sheet"
	"github.com/shopspring/decimal"
)

// A snapshot sheet that carries only the cash cell: no price table at all.
const cashOnlySnapshot = "Snapshot,,,,,,\nAccount,,,,,,9500.00\n"

const quoteDocument = `{"series":{"intraday":{"data":[[1,101.5],[2,102.25]]}}}`

func priceServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/sheet", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(cashOnlySnapshot))
	})
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(quoteDocument))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCollectPricesCashOnlySnapshotWithQuotes(t *testing.T) {
	srv := priceServer(t)
	cfg := &Config{
		Sheets: map[string]string{"in-equity": srv.URL + "/sheet"},
		Quotes: map[string]QuoteSource{
			"tcs": {Class: "in-equity", URL: srv.URL + "/quote", Path: "$.series.intraday.data[-1:][1]"},
		},
	}

	prices, summary, err := collectPrices(sheet.NewUncached(), cfg, folio.IndianEquity, true)
	if err != nil {
		t.Fatalf("collectPrices: %v", err)
	}
	if got, want := prices["TCS"], decimal.NewFromFloat(102.25); !got.Equal(want) {
		t.Errorf("quote price = %s, want %s", got, want)
	}
	if summary == nil || summary.CashBalance == nil {
		t.Fatalf("summary cash balance missing, got %+v", summary)
	}
	if want := decimal.NewFromInt(9500); !summary.CashBalance.Equal(want) {
		t.Errorf("cash balance = %s, want %s", summary.CashBalance, want)
	}
}

func TestCollectPricesCashOnlySnapshotNoQuotes(t *testing.T) {
	srv := priceServer(t)
	cfg := &Config{
		Sheets: map[string]string{"in-equity": srv.URL + "/sheet"},
	}

	prices, summary, err := collectPrices(sheet.NewUncached(), cfg, folio.IndianEquity, true)
	if err != nil {
		t.Fatalf("collectPrices: %v", err)
	}
	if len(prices) != 0 {
		t.Errorf("prices = %v, want none", prices)
	}
	if summary == nil || summary.CashBalance == nil {
		t.Fatalf("summary cash balance missing, got %+v", summary)
	}
}
