package collector

import (
	"context"
	"fmt"
	"time"

	"SignalSentry/internal/model"
)

// Counter receives data-source usage events. Implemented by the scan
// tracker; a nil Counter disables counting.
type Counter interface {
	IncrementAPICalls()
	IncrementErrors()
}

// Collector fetches bars through a Fetcher with a shared TTL cache and a
// bounded per-fetch timeout. Safe for concurrent use across symbols.
type Collector struct {
	fetcher  Fetcher
	cache    *barCache
	interval string
	limit    int
	timeout  time.Duration
	counter  Counter
}

type Options struct {
	Interval string
	Limit    int
	CacheTTL time.Duration
	Timeout  time.Duration
	Counter  Counter
}

func New(fetcher Fetcher, opts Options) *Collector {
	if opts.Interval == "" {
		opts.Interval = "5m"
	}
	if opts.Limit == 0 {
		opts.Limit = 100
	}
	if opts.CacheTTL == 0 {
		opts.CacheTTL = 25 * time.Second
	}
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Collector{
		fetcher:  fetcher,
		cache:    newBarCache(opts.CacheTTL),
		interval: opts.Interval,
		limit:    opts.Limit,
		timeout:  opts.Timeout,
		counter:  opts.Counter,
	}
}

// GetBars returns cached bars when fresh, otherwise fetches with a bounded
// timeout and stores the result.
func (c *Collector) GetBars(ctx context.Context, symbol string) ([]model.Bar, error) {
	if bars, ok := c.cache.Get(symbol, c.interval); ok {
		return bars, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.counter != nil {
		c.counter.IncrementAPICalls()
	}
	bars, err := c.fetcher.FetchBars(fetchCtx, symbol, c.interval, c.limit)
	if err != nil {
		if c.counter != nil {
			c.counter.IncrementErrors()
		}
		return nil, fmt.Errorf("fetch %s via %s: %w", symbol, c.fetcher.Name(), err)
	}

	c.cache.Set(symbol, c.interval, bars)
	return bars, nil
}

// Source returns the name of the underlying data source.
func (c *Collector) Source() string { return c.fetcher.Name() }
