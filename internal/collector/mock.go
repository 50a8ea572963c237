package collector

import (
	"context"
	"fmt"
	"time"

	"SignalSentry/internal/model"
)

// MockFetcher serves canned bars for tests and dry runs. A per-symbol
// delay simulates a slow upstream and honors context cancellation.
type MockFetcher struct {
	Bars  map[string][]model.Bar
	Err   error
	Delay map[string]time.Duration
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		Bars:  make(map[string][]model.Bar),
		Delay: make(map[string]time.Duration),
	}
}

func (f *MockFetcher) Name() string { return "mock" }

func (f *MockFetcher) FetchBars(ctx context.Context, symbol, interval string, limit int) ([]model.Bar, error) {
	if d, ok := f.Delay[symbol]; ok && d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.Err != nil {
		return nil, f.Err
	}
	bars, ok := f.Bars[symbol]
	if !ok {
		return nil, fmt.Errorf("mock: no data for %s", symbol)
	}
	if len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}
	return bars, nil
}
