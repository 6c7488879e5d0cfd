// Package cache implements in-process and Redis backed caches.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/spendings-bot/ledger/internal/application/adapter"
)

// rateCache implements adapter.RateCache on go-cache. Rates are immutable
// facts, so entries never expire.
type rateCache struct {
	store *gocache.Cache
}

// NewRateCache creates a new in-process rate cache.
func NewRateCache() adapter.RateCache {
	return &rateCache{
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get returns the memoized rate for a pair and day.
func (c *rateCache) Get(base, quote string, date time.Time) (decimal.Decimal, bool) {
	value, found := c.store.Get(rateKey(base, quote, date))
	if !found {
		return decimal.Zero, false
	}
	rate, ok := value.(decimal.Decimal)
	return rate, ok
}

// Set memoizes a rate for a pair and day.
func (c *rateCache) Set(base, quote string, date time.Time, rate decimal.Decimal) {
	c.store.Set(rateKey(base, quote, date), rate, gocache.NoExpiration)
}

func rateKey(base, quote string, date time.Time) string {
	return base + "/" + quote + "@" + date.UTC().Format("2006-01-02")
}
