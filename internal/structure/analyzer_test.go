package structure

import (
	"testing"

	"SignalSentry/internal/model"
)

// doji matches no detector: zero body means neither bullish nor bearish.
func doji(price float64) model.Bar {
	return model.Bar{Open: price, High: price + 0.1, Low: price - 0.1, Close: price, Volume: 1000}
}

func dojiSeries(n int, price float64) []model.Bar {
	bars := make([]model.Bar, n)
	for i := range bars {
		bars[i] = doji(price)
	}
	return bars
}

func TestAnalyze_TooFewBars(t *testing.T) {
	set := NewAnalyzer().Analyze(dojiSeries(19, 100))
	if !set.Empty() {
		t.Errorf("expected empty set under 20 bars, got %+v", set)
	}
}

func TestDetectOrderBlocks_Bullish(t *testing.T) {
	bars := dojiSeries(30, 100.5)
	// Bearish candidate at index 12 followed by five bullish candles
	// closing 2.5% above the candidate close.
	bars[12] = model.Bar{Open: 100.5, High: 100.6, Low: 99.9, Close: 100.0, Volume: 1000}
	closes := []float64{100.5, 101.0, 101.5, 102.0, 102.5}
	for i, c := range closes {
		bars[13+i] = model.Bar{Open: c - 0.4, High: c + 0.1, Low: c - 0.5, Close: c, Volume: 1000}
	}
	// Current price 100.5 is inside the candidate's 1% band.

	set := NewAnalyzer().Analyze(bars)
	if len(set.OrderBlocks) != 1 {
		t.Fatalf("expected 1 order block, got %d: %+v", len(set.OrderBlocks), set.OrderBlocks)
	}
	ob := set.OrderBlocks[0]
	if ob.Direction != model.DirectionBuy {
		t.Errorf("expected buy order block, got %s", ob.Direction)
	}
	if ob.Strength != model.StrengthMedium {
		t.Errorf("expected Medium for a 2.5%% move, got %s", ob.Strength)
	}
	if ob.Level != 100.0 || ob.High != 100.6 || ob.Low != 99.9 {
		t.Errorf("unexpected block geometry: %+v", ob)
	}
}

func TestDetectOrderBlocks_FarBlocksSuppressed(t *testing.T) {
	bars := dojiSeries(30, 110.0) // current price far above the block range
	bars[12] = model.Bar{Open: 100.5, High: 100.6, Low: 99.9, Close: 100.0, Volume: 1000}
	closes := []float64{100.5, 101.0, 101.5, 102.0, 102.5}
	for i, c := range closes {
		bars[13+i] = model.Bar{Open: c - 0.4, High: c + 0.1, Low: c - 0.5, Close: c, Volume: 1000}
	}

	set := NewAnalyzer().Analyze(bars)
	if len(set.OrderBlocks) != 0 {
		t.Errorf("expected stale block suppressed, got %+v", set.OrderBlocks)
	}
}

func TestDetectLiquidityGrabs_Bullish(t *testing.T) {
	bars := dojiSeries(20, 100)
	for i := 8; i < 18; i++ {
		bars[i] = model.Bar{Open: 99.5, High: 100.0, Low: 99.0, Close: 99.5, Volume: 1000}
	}
	// Final bar sweeps below the 99.0 swing low and closes bullish with a
	// long rejection wick.
	bars[19] = model.Bar{Open: 99.2, High: 99.35, Low: 98.7, Close: 99.3, Volume: 1000}

	set := NewAnalyzer().Analyze(bars)
	if len(set.LiquidityGrabs) != 1 {
		t.Fatalf("expected 1 liquidity grab, got %d: %+v", len(set.LiquidityGrabs), set.LiquidityGrabs)
	}
	lg := set.LiquidityGrabs[0]
	if lg.Direction != model.DirectionBuy {
		t.Errorf("expected buy grab, got %s", lg.Direction)
	}
	if lg.Level != 99.0 {
		t.Errorf("expected grabbed level 99.0, got %.2f", lg.Level)
	}
	if lg.Strength != model.StrengthStrong {
		t.Errorf("expected Strong, got %s", lg.Strength)
	}
}

func TestDetectLiquidityGrabs_ShallowPierceIgnored(t *testing.T) {
	bars := dojiSeries(20, 100)
	for i := 8; i < 18; i++ {
		bars[i] = model.Bar{Open: 99.5, High: 100.0, Low: 99.0, Close: 99.5, Volume: 1000}
	}
	// Low 98.9 does not clear the 0.2% pierce threshold (98.802).
	bars[19] = model.Bar{Open: 99.2, High: 99.35, Low: 98.9, Close: 99.3, Volume: 1000}

	set := NewAnalyzer().Analyze(bars)
	if len(set.LiquidityGrabs) != 0 {
		t.Errorf("expected no grab for shallow pierce, got %+v", set.LiquidityGrabs)
	}
}

func TestDetectBreakRetest_Bullish(t *testing.T) {
	bars := dojiSeries(20, 100)
	// 15-bar window: three lows at 100.0 drive key support to 100.0;
	// highs near 103 keep resistance out of play.
	for i := 0; i < 15; i++ {
		bars[i] = model.Bar{Open: 101.5, High: 103.0, Low: 101.0, Close: 101.5, Volume: 1000}
	}
	bars[3].Low, bars[7].Low, bars[11].Low = 100.0, 100.0, 100.0

	// below -> break -> retest -> continuation, as dojis so no other
	// detector can fire on these closes.
	bars[16] = doji(99.5)
	bars[17] = doji(100.6)
	bars[18] = doji(100.2)
	bars[19] = doji(100.4)

	set := NewAnalyzer().Analyze(bars)
	if len(set.BreakRetests) != 1 {
		t.Fatalf("expected 1 break-retest, got %d: %+v", len(set.BreakRetests), set.BreakRetests)
	}
	br := set.BreakRetests[0]
	if br.Direction != model.DirectionBuy {
		t.Errorf("expected buy break-retest, got %s", br.Direction)
	}
	if br.Level != 100.0 {
		t.Errorf("expected key support 100.0, got %.2f", br.Level)
	}
}

func TestDetectBreakRetest_NoSetupWithoutRetest(t *testing.T) {
	bars := dojiSeries(20, 100)
	for i := 0; i < 15; i++ {
		bars[i] = model.Bar{Open: 101.5, High: 103.0, Low: 101.0, Close: 101.5, Volume: 1000}
	}
	bars[3].Low, bars[7].Low, bars[11].Low = 100.0, 100.0, 100.0

	bars[16] = doji(99.5)
	bars[17] = doji(100.6)
	bars[18] = doji(102.0) // never came back to the level
	bars[19] = doji(102.5)

	set := NewAnalyzer().Analyze(bars)
	if len(set.BreakRetests) != 0 {
		t.Errorf("expected no setup without a retest, got %+v", set.BreakRetests)
	}
}

func TestScore_PresenceNotCount(t *testing.T) {
	a := NewAnalyzer()
	set := model.StructureSet{
		OrderBlocks: []model.StructureSignal{
			{Kind: model.StructureOrderBlock, Direction: model.DirectionBuy},
			{Kind: model.StructureOrderBlock, Direction: model.DirectionBuy},
		},
		LiquidityGrabs: []model.StructureSignal{
			{Kind: model.StructureLiquidityGrab, Direction: model.DirectionSell},
		},
		BreakRetests: []model.StructureSignal{
			{Kind: model.StructureBreakRetest, Direction: model.DirectionBuy},
		},
	}
	if got := a.Score(set, model.DirectionBuy); got != 2 {
		t.Errorf("expected buy score 2 (duplicates collapse), got %d", got)
	}
	if got := a.Score(set, model.DirectionSell); got != 1 {
		t.Errorf("expected sell score 1, got %d", got)
	}
	if got := a.Score(model.StructureSet{}, model.DirectionBuy); got != 0 {
		t.Errorf("expected 0 for empty set, got %d", got)
	}
}
