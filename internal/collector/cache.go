package collector

import (
	"sync"
	"time"

	"SignalSentry/internal/model"
)

type cacheEntry struct {
	Bars      []model.Bar
	ExpiresAt time.Time
}

// barCache is a TTL cache of fetched bars keyed by symbol and interval.
// Safe for concurrent use; a duplicate fetch on a get/store race is
// acceptable, stale entries simply expire.
type barCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func newBarCache(ttl time.Duration) *barCache {
	return &barCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func cacheKey(symbol, interval string) string {
	return symbol + "|" + interval
}

func (c *barCache) Get(symbol, interval string) ([]model.Bar, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[cacheKey(symbol, interval)]
	if !ok || time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Bars, true
}

func (c *barCache) Set(symbol, interval string, bars []model.Bar) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(symbol, interval)] = cacheEntry{
		Bars:      bars,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}
