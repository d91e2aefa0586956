package folioperf

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceLookup is the capability the engine uses to resolve security prices.
// The engine performs no I/O itself: implementations hold already-fetched
// data, or fetch and cache outside of the engine's control.
type PriceLookup interface {
	// At returns the closing price of a security on exactly that day.
	At(ticker string, day Date) (decimal.Decimal, bool)
	// AsOf returns the closing price on that day, or the most recent price
	// before it (forward-fill).
	AsOf(ticker string, day Date) (decimal.Decimal, bool)
}

// TransactionSource supplies the transaction history for a portfolio.
// The ledger it returns may be in any order; the engine sorts.
type TransactionSource interface {
	Get(ctx context.Context) (*Ledger, error)
}

// PricePoint is a single closing price on a given date.
type PricePoint struct {
	Date  Date
	Close decimal.Decimal
}

// MemoryPrices is an in-memory PriceLookup backed by per-ticker histories.
// The zero value is not usable; use NewMemoryPrices.
type MemoryPrices struct {
	histories map[string]*History[decimal.Decimal]
}

// NewMemoryPrices returns an empty in-memory price database.
func NewMemoryPrices() *MemoryPrices {
	return &MemoryPrices{histories: make(map[string]*History[decimal.Decimal])}
}

// Add records the closing price of a security on a given day.
// An existing price on that day is overwritten.
func (m *MemoryPrices) Add(ticker string, day Date, close decimal.Decimal) *MemoryPrices {
	h, ok := m.histories[ticker]
	if !ok {
		h = &History[decimal.Decimal]{}
		m.histories[ticker] = h
	}
	h.Append(day, close)
	return m
}

// AddSeries records a whole price series for a security.
func (m *MemoryPrices) AddSeries(ticker string, points []PricePoint) *MemoryPrices {
	for _, p := range points {
		m.Add(ticker, p.Date, p.Close)
	}
	return m
}

// Has reports whether any price is known for the ticker.
func (m *MemoryPrices) Has(ticker string) bool {
	h, ok := m.histories[ticker]
	return ok && h.Len() > 0
}

// At returns the closing price of a security on exactly that day.
func (m *MemoryPrices) At(ticker string, day Date) (decimal.Decimal, bool) {
	h, ok := m.histories[ticker]
	if !ok {
		return decimal.Zero, false
	}
	return h.Get(day)
}

// AsOf returns the closing price on that day or the most recent one before it.
func (m *MemoryPrices) AsOf(ticker string, day Date) (decimal.Decimal, bool) {
	h, ok := m.histories[ticker]
	if !ok {
		return decimal.Zero, false
	}
	return h.ValueAsOf(day)
}

var _ PriceLookup = (*MemoryPrices)(nil)
