package collector

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"

	"SignalSentry/internal/model"
)

// BinanceFetcher implements Fetcher using the Binance spot klines API.
type BinanceFetcher struct {
	client *binance.Client
}

// NewBinanceFetcher creates a Binance fetcher. Keys may be empty since
// kline endpoints are public.
func NewBinanceFetcher(apiKey, apiSecret string) *BinanceFetcher {
	return &BinanceFetcher{client: binance.NewClient(apiKey, apiSecret)}
}

func (f *BinanceFetcher) Name() string { return "binance" }

func (f *BinanceFetcher) FetchBars(ctx context.Context, symbol, interval string, limit int) ([]model.Bar, error) {
	klines, err := f.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("binance klines: %w", err)
	}

	bars := make([]model.Bar, 0, len(klines))
	for _, k := range klines {
		bar, err := convertKline(k)
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

func convertKline(k *binance.Kline) (model.Bar, error) {
	o, err := strconv.ParseFloat(k.Open, 64)
	if err != nil {
		return model.Bar{}, fmt.Errorf("binance parse open %q: %w", k.Open, err)
	}
	h, err := strconv.ParseFloat(k.High, 64)
	if err != nil {
		return model.Bar{}, fmt.Errorf("binance parse high %q: %w", k.High, err)
	}
	l, err := strconv.ParseFloat(k.Low, 64)
	if err != nil {
		return model.Bar{}, fmt.Errorf("binance parse low %q: %w", k.Low, err)
	}
	c, err := strconv.ParseFloat(k.Close, 64)
	if err != nil {
		return model.Bar{}, fmt.Errorf("binance parse close %q: %w", k.Close, err)
	}
	v, err := strconv.ParseFloat(k.Volume, 64)
	if err != nil {
		return model.Bar{}, fmt.Errorf("binance parse volume %q: %w", k.Volume, err)
	}
	return model.Bar{
		Time:   time.UnixMilli(k.OpenTime),
		Open:   o,
		High:   h,
		Low:    l,
		Close:  c,
		Volume: int64(v),
	}, nil
}
