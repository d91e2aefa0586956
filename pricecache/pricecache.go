// Package pricecache decorates a price lookup with a TTL cache, so repeated
// valuations over the same range do not hammer a remote provider.
package pricecache

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/shopspring/decimal"

	"github.com/folioperf/folioperf"
)

type entry struct {
	price decimal.Decimal
	ok    bool
}

// Cache is a folioperf.PriceLookup that caches the answers of an inner
// lookup. Misses are cached too: a symbol known to have no price on a day
// stays a fast miss until the entry expires.
type Cache struct {
	inner folioperf.PriceLookup
	c     *ristretto.Cache
	ttl   time.Duration
}

// New wraps the inner lookup with a cache of roughly maxCost entries whose
// answers expire after ttl.
func New(inner folioperf.PriceLookup, maxCost int64, ttl time.Duration) (*Cache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{inner: inner, c: c, ttl: ttl}, nil
}

// At returns the cached closing price for that exact day, consulting the
// inner lookup on a miss.
func (c *Cache) At(ticker string, day folioperf.Date) (decimal.Decimal, bool) {
	return c.lookup("at", ticker, day, c.inner.At)
}

// AsOf returns the cached forward-filled price, consulting the inner lookup
// on a miss.
func (c *Cache) AsOf(ticker string, day folioperf.Date) (decimal.Decimal, bool) {
	return c.lookup("asof", ticker, day, c.inner.AsOf)
}

func (c *Cache) lookup(kind, ticker string, day folioperf.Date, miss func(string, folioperf.Date) (decimal.Decimal, bool)) (decimal.Decimal, bool) {
	key := fmt.Sprintf("%s %s %s", kind, ticker, day)
	if v, hit := c.c.Get(key); hit {
		e := v.(entry)
		return e.price, e.ok
	}
	price, ok := miss(ticker, day)
	c.c.SetWithTTL(key, entry{price: price, ok: ok}, 1, c.ttl)
	return price, ok
}

// Wait blocks until pending cache writes are applied. Tests use it; normal
// callers do not need to.
func (c *Cache) Wait() { c.c.Wait() }

var _ folioperf.PriceLookup = (*Cache)(nil)
