package calculator

import (
	"testing"

	"SignalSentry/internal/model"
)

func barsFromCloses(closes []float64) []model.Bar {
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}
	return bars
}

func TestRSI_InsufficientData(t *testing.T) {
	closes := []float64{100, 101, 102}
	rsi, err := RSI(barsFromCloses(closes), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 50.0 {
		t.Errorf("expected neutral 50 for short series, got %.2f", rsi)
	}
}

func TestRSI_InvalidPeriod(t *testing.T) {
	if _, err := RSI(barsFromCloses([]float64{100, 101}), 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestRSI_AllGains(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi, err := RSI(barsFromCloses(closes), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 100.0 {
		t.Errorf("expected 100 for monotone gains, got %.2f", rsi)
	}
}

func TestRSI_Bounds(t *testing.T) {
	closes := []float64{100, 102, 101, 103, 99, 104, 98, 105, 101, 100,
		103, 97, 106, 102, 99, 104, 100, 103, 98, 105}
	rsi, err := RSI(barsFromCloses(closes), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi < 0 || rsi > 100 {
		t.Errorf("RSI out of bounds: %.2f", rsi)
	}
}

func TestRSI_DecliningSeries(t *testing.T) {
	closes := make([]float64, 30)
	price := 110.0
	for i := range closes {
		closes[i] = price
		price -= 0.5
	}
	rsi, err := RSI(barsFromCloses(closes), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi >= 30 {
		t.Errorf("expected oversold RSI for steady decline, got %.2f", rsi)
	}
}
