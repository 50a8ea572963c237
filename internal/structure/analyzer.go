package structure

import (
	"math"
	"sort"

	"SignalSentry/internal/model"
)

// Analyzer detects market-structure setups: order blocks, liquidity grabs
// and break-and-retest of key levels. It holds no state and is safe for
// concurrent use across symbols.
type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze runs all three structure detectors over the series. Fewer than
// 20 bars yields an empty set.
func (a *Analyzer) Analyze(bars []model.Bar) model.StructureSet {
	var set model.StructureSet
	if len(bars) < 20 {
		return set
	}
	set.OrderBlocks = a.detectOrderBlocks(bars)
	set.LiquidityGrabs = a.detectLiquidityGrabs(bars)
	set.BreakRetests = a.detectBreakRetest(bars)
	return set
}

// Score awards one point per detector kind that produced at least one
// signal matching the direction. Presence counts, not volume of signals,
// so the result is always in [0,3].
func (a *Analyzer) Score(set model.StructureSet, dir model.Direction) int {
	score := 0
	for _, ob := range set.OrderBlocks {
		if ob.Direction == dir {
			score++
			break
		}
	}
	for _, lg := range set.LiquidityGrabs {
		if lg.Direction == dir {
			score++
			break
		}
	}
	for _, br := range set.BreakRetests {
		if br.Direction == dir {
			score++
			break
		}
	}
	return score
}

// detectOrderBlocks finds the last opposing candle before a strong impulse
// move. A candidate only counts if the current close sits within 1% of the
// candidate's high/low range, so stale blocks far from price are dropped.
func (a *Analyzer) detectOrderBlocks(bars []model.Bar) []model.StructureSignal {
	var blocks []model.StructureSignal
	currentPrice := bars[len(bars)-1].Close

	// Bullish blocks: bearish candle followed by a strong up move.
	for i := 10; i < len(bars)-5; i++ {
		cur := bars[i]
		if !cur.IsBearish() {
			continue
		}
		next := bars[i+1 : i+6]
		bullishCount := 0
		maxClose := math.Inf(-1)
		for _, b := range next {
			if b.IsBullish() {
				bullishCount++
			}
			if b.Close > maxClose {
				maxClose = b.Close
			}
		}
		move := (maxClose - cur.Close) / cur.Close
		if bullishCount < 3 || move <= 0.02 {
			continue
		}
		if currentPrice < cur.Low*0.99 || currentPrice > cur.High*1.01 {
			continue
		}
		strength := model.StrengthMedium
		if move > 0.03 {
			strength = model.StrengthStrong
		}
		blocks = append(blocks, model.StructureSignal{
			Kind:      model.StructureOrderBlock,
			Direction: model.DirectionBuy,
			Level:     cur.Close,
			High:      cur.High,
			Low:       cur.Low,
			Strength:  strength,
		})
	}

	// Bearish blocks: bullish candle followed by a strong down move.
	for i := 10; i < len(bars)-5; i++ {
		cur := bars[i]
		if !cur.IsBullish() {
			continue
		}
		next := bars[i+1 : i+6]
		bearishCount := 0
		minClose := math.Inf(1)
		for _, b := range next {
			if b.IsBearish() {
				bearishCount++
			}
			if b.Close < minClose {
				minClose = b.Close
			}
		}
		move := (cur.Close - minClose) / cur.Close
		if bearishCount < 3 || move <= 0.02 {
			continue
		}
		if currentPrice < cur.Low*0.99 || currentPrice > cur.High*1.01 {
			continue
		}
		strength := model.StrengthMedium
		if move > 0.03 {
			strength = model.StrengthStrong
		}
		blocks = append(blocks, model.StructureSignal{
			Kind:      model.StructureOrderBlock,
			Direction: model.DirectionSell,
			Level:     cur.Close,
			High:      cur.High,
			Low:       cur.Low,
			Strength:  strength,
		})
	}

	return blocks
}

// detectLiquidityGrabs looks for a stop hunt: the latest bar piercing the
// swing high/low of a 10-bar window ending two bars back, then closing in
// the opposite direction with a long rejection wick. The wick is measured
// from the close to the extreme, so it includes the body.
func (a *Analyzer) detectLiquidityGrabs(bars []model.Bar) []model.StructureSignal {
	var grabs []model.StructureSignal
	if len(bars) < 15 {
		return grabs
	}

	window := bars[len(bars)-12 : len(bars)-2]
	swingHigh := math.Inf(-1)
	swingLow := math.Inf(1)
	for _, b := range window {
		if b.High > swingHigh {
			swingHigh = b.High
		}
		if b.Low < swingLow {
			swingLow = b.Low
		}
	}

	last := bars[len(bars)-1]

	if last.Low < swingLow*0.998 && last.IsBullish() {
		wick := last.Close - last.Low
		if wick > last.Body()*1.5 {
			grabs = append(grabs, model.StructureSignal{
				Kind:      model.StructureLiquidityGrab,
				Direction: model.DirectionBuy,
				Level:     swingLow,
				High:      last.High,
				Low:       last.Low,
				Strength:  model.StrengthStrong,
			})
		}
	}

	if last.High > swingHigh*1.002 && last.IsBearish() {
		wick := last.High - last.Close
		if wick > last.Body()*1.5 {
			grabs = append(grabs, model.StructureSignal{
				Kind:      model.StructureLiquidityGrab,
				Direction: model.DirectionSell,
				Level:     swingHigh,
				High:      last.High,
				Low:       last.Low,
				Strength:  model.StrengthStrong,
			})
		}
	}

	return grabs
}

// detectBreakRetest checks the last 5 closes against key levels derived
// from a 15-bar window ending 5 bars back: resistance is the mean of the
// 3 largest highs, support the mean of the 3 smallest lows. The bearish
// retest band is tighter below the level than the bullish band is above it.
func (a *Analyzer) detectBreakRetest(bars []model.Bar) []model.StructureSignal {
	var setups []model.StructureSignal
	n := len(bars)
	if n < 20 {
		return setups
	}

	window := bars[n-20 : n-5]
	highs := make([]float64, len(window))
	lows := make([]float64, len(window))
	for i, b := range window {
		highs[i] = b.High
		lows[i] = b.Low
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(highs)))
	sort.Float64s(lows)
	keyResistance := (highs[0] + highs[1] + highs[2]) / 3
	keySupport := (lows[0] + lows[1] + lows[2]) / 3

	current := bars[n-1].Close
	c4 := bars[n-4].Close
	c3 := bars[n-3].Close
	c2 := bars[n-2].Close

	if c4 < keySupport &&
		c3 > keySupport*1.005 &&
		c2 >= keySupport*0.995 && c2 <= keySupport*1.01 &&
		current > c2 {
		setups = append(setups, model.StructureSignal{
			Kind:      model.StructureBreakRetest,
			Direction: model.DirectionBuy,
			Level:     keySupport,
			Strength:  model.StrengthStrong,
		})
	}

	if c4 > keyResistance &&
		c3 < keyResistance*0.995 &&
		c2 >= keyResistance*0.99 && c2 <= keyResistance*1.005 &&
		current < c2 {
		setups = append(setups, model.StructureSignal{
			Kind:      model.StructureBreakRetest,
			Direction: model.DirectionSell,
			Level:     keyResistance,
			Strength:  model.StrengthStrong,
		})
	}

	return setups
}
