package collector

import (
	"context"

	"SignalSentry/internal/model"
)

// Fetcher retrieves intraday candles for a symbol from a market data source.
type Fetcher interface {
	// FetchBars returns up to limit bars at the given interval, oldest first.
	FetchBars(ctx context.Context, symbol, interval string, limit int) ([]model.Bar, error)
	// Name identifies the data source for logging.
	Name() string
}
