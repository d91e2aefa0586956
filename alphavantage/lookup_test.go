package alphavantage

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/folioperf/folioperf"
)

func TestLookup_FetchesOncePerTicker(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprintln(w, dailyPayload)
	}))
	defer server.Close()

	client := NewWithClient("demo", server.URL, server.Client())
	rng := folioperf.NewRange(folioperf.NewDate(2025, time.January, 1), folioperf.NewDate(2025, time.January, 31))
	lookup := NewLookup(client, rng)

	monday := folioperf.NewDate(2025, time.January, 6)
	price, ok := lookup.At("AAPL", monday)
	if !ok || !price.Equal(decimal.RequireFromString("100.50")) {
		t.Errorf("At = %s %v, want 100.50", price, ok)
	}

	// Forward fill across the week, still one HTTP request.
	price, ok = lookup.AsOf("AAPL", monday.Add(2))
	if !ok || !price.Equal(decimal.RequireFromString("101.25")) {
		t.Errorf("AsOf = %s %v, want 101.25", price, ok)
	}
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
}

func TestLookup_FailedFetchReadsAsMissing(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewWithClient("demo", server.URL, server.Client())
	rng := folioperf.NewRange(folioperf.NewDate(2025, time.January, 1), folioperf.NewDate(2025, time.January, 31))
	lookup := NewLookup(client, rng)

	day := folioperf.NewDate(2025, time.January, 6)
	if _, ok := lookup.At("AAPL", day); ok {
		t.Error("a failed fetch must read as no price")
	}
	// The failure is remembered, not retried on every date of a walk.
	lookup.At("AAPL", day.Add(1))
	lookup.AsOf("AAPL", day.Add(2))
	if requests != 1 {
		t.Errorf("requests = %d, want 1", requests)
	}
}
