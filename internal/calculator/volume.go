package calculator

import "SignalSentry/internal/model"

// VolumeRatio compares the latest bar's volume against the mean volume of
// the 20 bars preceding it. Returns the ratio and whether it clears the
// spike multiplier. With fewer than 20 bars the ratio is a neutral 1.0 and
// no spike is reported.
func VolumeRatio(bars []model.Bar, multiplier float64) (float64, bool) {
	if len(bars) < 20 {
		return 1.0, false
	}

	last := bars[len(bars)-1]
	start := len(bars) - 21
	if start < 0 {
		start = 0
	}
	window := bars[start : len(bars)-1]

	var sum float64
	for _, b := range window {
		sum += float64(b.Volume)
	}
	avg := sum / float64(len(window))
	if avg == 0 {
		return 1.0, false
	}

	ratio := float64(last.Volume) / avg
	return ratio, ratio >= multiplier
}
