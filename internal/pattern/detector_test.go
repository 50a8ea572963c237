package pattern

import (
	"testing"

	"SignalSentry/internal/model"
)

func bar(o, h, l, c float64) model.Bar {
	return model.Bar{Open: o, High: h, Low: l, Close: c, Volume: 1000}
}

// filler is a small candle that matches no reversal pattern.
func filler() model.Bar {
	return bar(100.0, 100.3, 99.8, 100.2)
}

func window(last ...model.Bar) []model.Bar {
	bars := []model.Bar{}
	for len(bars)+len(last) < 5 {
		bars = append(bars, filler())
	}
	return append(bars, last...)
}

func names(matches []model.PatternMatch) map[string]model.PatternMatch {
	m := make(map[string]model.PatternMatch, len(matches))
	for _, p := range matches {
		m[p.Name] = p
	}
	return m
}

func TestDetect_TooFewBars(t *testing.T) {
	d := NewDetector()
	bars := []model.Bar{filler(), filler(), filler(), filler()}
	if matches := d.Detect(bars); matches != nil {
		t.Errorf("expected no matches under 5 bars, got %v", matches)
	}
}

func TestDetect_BullishEngulfing(t *testing.T) {
	// prev bearish, curr engulfs it with body 1.2 of range 1.35
	prev := bar(101.0, 101.1, 99.9, 100.0)
	curr := bar(99.9, 101.2, 99.85, 101.1)
	got := names(NewDetector().Detect(window(prev, curr)))
	m, ok := got["Bullish Engulfing"]
	if !ok {
		t.Fatalf("expected bullish engulfing, got %v", got)
	}
	if m.Direction != model.DirectionBuy || m.Strength != model.StrengthStrong {
		t.Errorf("unexpected match attributes: %+v", m)
	}
}

func TestDetect_BearishEngulfing(t *testing.T) {
	// prev bullish, curr engulfs it downward
	prev := bar(100.0, 101.1, 99.9, 101.0)
	curr := bar(101.1, 101.15, 99.8, 99.9)
	got := names(NewDetector().Detect(window(prev, curr)))
	m, ok := got["Bearish Engulfing"]
	if !ok {
		t.Fatalf("expected bearish engulfing, got %v", got)
	}
	if m.Direction != model.DirectionSell {
		t.Errorf("expected sell direction, got %s", m.Direction)
	}
}

func TestDetect_HammerAlsoPinBar(t *testing.T) {
	// A textbook hammer with a dominant lower wick also satisfies the
	// bullish pin bar predicate; both must be reported.
	hammer := bar(100.0, 100.07, 99.5, 100.05)
	got := names(NewDetector().Detect(window(hammer)))
	if _, ok := got["Hammer"]; !ok {
		t.Fatalf("expected hammer, got %v", got)
	}
	if _, ok := got["Bullish Pin Bar"]; !ok {
		t.Fatalf("expected coexisting bullish pin bar, got %v", got)
	}
	if got["Hammer"].Strength != model.StrengthMedium {
		t.Errorf("expected Medium hammer, got %s", got["Hammer"].Strength)
	}
	if got["Bullish Pin Bar"].Strength != model.StrengthStrong {
		t.Errorf("expected Strong pin bar, got %s", got["Bullish Pin Bar"].Strength)
	}
}

func TestDetect_ShootingStar(t *testing.T) {
	star := bar(100.05, 100.6, 99.98, 100.0)
	got := names(NewDetector().Detect(window(star)))
	m, ok := got["Shooting Star"]
	if !ok {
		t.Fatalf("expected shooting star, got %v", got)
	}
	if m.Direction != model.DirectionSell || m.Strength != model.StrengthMedium {
		t.Errorf("unexpected match attributes: %+v", m)
	}
	if _, ok := got["Bearish Pin Bar"]; !ok {
		t.Errorf("expected coexisting bearish pin bar, got %v", got)
	}
}

func TestDetect_MorningStar(t *testing.T) {
	// long bearish, small-body pause, strong bullish close above the midpoint
	first := bar(101.0, 101.1, 99.9, 100.0)
	second := bar(99.95, 100.1, 99.85, 100.0)
	third := bar(100.0, 100.9, 99.95, 100.8)
	got := names(NewDetector().Detect(window(first, second, third)))
	m, ok := got["Morning Star"]
	if !ok {
		t.Fatalf("expected morning star, got %v", got)
	}
	if m.Direction != model.DirectionBuy || m.Strength != model.StrengthVeryStrong {
		t.Errorf("unexpected match attributes: %+v", m)
	}
}

func TestDetect_EveningStar(t *testing.T) {
	// long bullish, small-body pause, strong bearish close below the midpoint
	first := bar(100.0, 101.1, 99.9, 101.0)
	second := bar(101.05, 101.2, 100.95, 101.0)
	third := bar(101.0, 101.05, 100.1, 100.2)
	got := names(NewDetector().Detect(window(first, second, third)))
	m, ok := got["Evening Star"]
	if !ok {
		t.Fatalf("expected evening star, got %v", got)
	}
	if m.Direction != model.DirectionSell || m.Strength != model.StrengthVeryStrong {
		t.Errorf("unexpected match attributes: %+v", m)
	}
}

func TestDetect_NoPatternOnQuietWindow(t *testing.T) {
	bars := []model.Bar{filler(), filler(), filler(), filler(), filler()}
	if matches := NewDetector().Detect(bars); len(matches) != 0 {
		t.Errorf("expected no matches on quiet window, got %v", matches)
	}
}
