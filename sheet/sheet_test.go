package sheet

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetchCSV(t *testing.T) {
	const body = "Ticker,Price\nTCS,3500\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte(body))
	}))
	defer srv.Close()

	got, err := NewUncached().FetchCSV(srv.URL)
	if err != nil {
		t.Fatalf("FetchCSV() failed: %v", err)
	}
	if got != body {
		t.Errorf("FetchCSV() = %q, want %q", got, body)
	}
}

func TestFetchCSVRejectsHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<!DOCTYPE html><html><body>Sign in</body></html>"))
	}))
	defer srv.Close()

	_, err := NewUncached().FetchCSV(srv.URL)
	if err == nil {
		t.Fatal("FetchCSV() accepted an HTML body")
	}
	if !strings.Contains(err.Error(), "HTML") {
		t.Errorf("error %q does not mention HTML", err)
	}
}

func TestFetchCSVRejectsNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := NewUncached().FetchCSV(srv.URL); err == nil {
		t.Fatal("FetchCSV() accepted a 404")
	}
}

func TestQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"series":{"intraday":{"data":[[1700000000,101.5],[1700000300,102.25]]}}}`))
	}))
	defer srv.Close()

	got, err := NewUncached().Quote(srv.URL, "$.series.intraday.data[-1:][1]")
	if err != nil {
		t.Fatalf("Quote() failed: %v", err)
	}
	if got != 102.25 {
		t.Errorf("Quote() = %v, want 102.25", got)
	}
}

func TestQuoteStringValue(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"last":"99.75"}`))
	}))
	defer srv.Close()

	got, err := NewUncached().Quote(srv.URL, "$.last")
	if err != nil {
		t.Fatalf("Quote() failed: %v", err)
	}
	if got != 99.75 {
		t.Errorf("Quote() = %v, want 99.75", got)
	}
}

func TestQuoteBadPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"last":{"nested":true}}`))
	}))
	defer srv.Close()

	if _, err := NewUncached().Quote(srv.URL, "$.last"); err == nil {
		t.Fatal("Quote() accepted a non-numeric selection")
	}
}
