package alphavantage

import (
	"log"

	"github.com/shopspring/decimal"

	"github.com/folioperf/folioperf"
)

// Lookup adapts the client to folioperf.PriceLookup: the first access to a
// ticker fetches its whole daily series for the range, later accesses are
// served from memory. Fetch failures are logged and the ticker reads as
// having no prices, so a dead API degrades a valuation instead of aborting it.
type Lookup struct {
	client *Client
	rng    folioperf.Range
	prices *folioperf.MemoryPrices
	tried  map[string]bool
}

// NewLookup returns a lazy lookup over the given range.
func NewLookup(client *Client, rng folioperf.Range) *Lookup {
	return &Lookup{
		client: client,
		rng:    rng,
		prices: folioperf.NewMemoryPrices(),
		tried:  make(map[string]bool),
	}
}

func (l *Lookup) ensure(ticker string) {
	if l.tried[ticker] {
		return
	}
	l.tried[ticker] = true
	series, err := l.client.Daily(ticker, l.rng)
	if err != nil {
		log.Printf("could not fetch %q, valuing it at nothing: %v", ticker, err)
		return
	}
	for on, close := range series.Values() {
		l.prices.Add(ticker, on, close)
	}
}

// At returns the closing price of a security on exactly that day.
func (l *Lookup) At(ticker string, day folioperf.Date) (decimal.Decimal, bool) {
	l.ensure(ticker)
	return l.prices.At(ticker, day)
}

// AsOf returns the closing price on that day or the most recent one before it.
func (l *Lookup) AsOf(ticker string, day folioperf.Date) (decimal.Decimal, bool) {
	l.ensure(ticker)
	return l.prices.AsOf(ticker, day)
}

// Prices returns everything fetched so far, for persisting to the local
// price store.
func (l *Lookup) Prices() *folioperf.MemoryPrices { return l.prices }

var _ folioperf.PriceLookup = (*Lookup)(nil)
