package calculator

import (
	"math"
	"sort"

	"SignalSentry/internal/model"
)

// FindSwingPoints scans the trailing lookback bars for local extremes. A bar
// is a swing high when its high exceeds the highs of the two bars on either
// side, and a swing low when its low is below the lows of the two bars on
// either side. The first and last two bars of the window cannot qualify.
func FindSwingPoints(bars []model.Bar, lookback int) (highs, lows []float64) {
	if lookback > 0 && len(bars) > lookback {
		bars = bars[len(bars)-lookback:]
	}
	for i := 2; i < len(bars)-2; i++ {
		b := bars[i]
		if b.High > bars[i-1].High && b.High > bars[i-2].High &&
			b.High > bars[i+1].High && b.High > bars[i+2].High {
			highs = append(highs, b.High)
		}
		if b.Low < bars[i-1].Low && b.Low < bars[i-2].Low &&
			b.Low < bars[i+1].Low && b.Low < bars[i+2].Low {
			lows = append(lows, b.Low)
		}
	}
	return highs, lows
}

// ClusterLevels sorts the values ascending and greedily groups runs where
// each value sits within threshold (relative) of the first value admitted to
// the current cluster. Each cluster collapses to its arithmetic mean. The
// result is ordered ascending by price.
func ClusterLevels(values []float64, threshold float64, kind model.LevelKind) []model.Level {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var levels []model.Level
	seed := sorted[0]
	cluster := []float64{seed}

	flush := func() {
		var sum float64
		for _, v := range cluster {
			sum += v
		}
		levels = append(levels, model.Level{
			Price:       sum / float64(len(cluster)),
			Kind:        kind,
			SourceCount: len(cluster),
		})
	}

	for _, v := range sorted[1:] {
		if seed != 0 && math.Abs(v-seed)/seed <= threshold {
			cluster = append(cluster, v)
			continue
		}
		flush()
		seed = v
		cluster = []float64{v}
	}
	flush()

	return levels
}

// ClassifyProximity finds the first level whose distance to price, relative
// to the level, is within threshold. Resistances are checked before supports
// and the first match wins, even if a later level is closer. Returns nil
// when no level is near.
func ClassifyProximity(price float64, supports, resistances []model.Level, threshold float64) *model.Level {
	if price == 0 {
		return nil
	}
	for i := range resistances {
		if math.Abs(price-resistances[i].Price)/resistances[i].Price <= threshold {
			return &resistances[i]
		}
	}
	for i := range supports {
		if math.Abs(price-supports[i].Price)/supports[i].Price <= threshold {
			return &supports[i]
		}
	}
	return nil
}
