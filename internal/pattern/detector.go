package pattern

import "SignalSentry/internal/model"

// Detector classifies reversal candlestick patterns over the trailing five
// bars of a series. It holds no state and is safe for concurrent use.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect runs every pattern predicate against the trailing five bars and
// returns all matches. Fewer than five bars yields no matches. Predicates
// are independent, so one window can match several patterns at once.
func (d *Detector) Detect(bars []model.Bar) []model.PatternMatch {
	if len(bars) < 5 {
		return nil
	}
	w := bars[len(bars)-5:]

	var matches []model.PatternMatch
	add := func(name string, dir model.Direction, strength model.Strength) {
		matches = append(matches, model.PatternMatch{Name: name, Direction: dir, Strength: strength})
	}

	if isBullishEngulfing(w) {
		add("Bullish Engulfing", model.DirectionBuy, model.StrengthStrong)
	}
	if isBearishEngulfing(w) {
		add("Bearish Engulfing", model.DirectionSell, model.StrengthStrong)
	}
	if isHammer(w) {
		add("Hammer", model.DirectionBuy, model.StrengthMedium)
	}
	if isShootingStar(w) {
		add("Shooting Star", model.DirectionSell, model.StrengthMedium)
	}
	if isMorningStar(w) {
		add("Morning Star", model.DirectionBuy, model.StrengthVeryStrong)
	}
	if isEveningStar(w) {
		add("Evening Star", model.DirectionSell, model.StrengthVeryStrong)
	}
	if isBullishPinBar(w) {
		add("Bullish Pin Bar", model.DirectionBuy, model.StrengthStrong)
	}
	if isBearishPinBar(w) {
		add("Bearish Pin Bar", model.DirectionSell, model.StrengthStrong)
	}

	return matches
}

func isBullishEngulfing(w []model.Bar) bool {
	prev, curr := w[len(w)-2], w[len(w)-1]
	engulfs := curr.Open <= prev.Close && curr.Close >= prev.Open
	strongBody := curr.Body() > curr.Range()*0.6
	return prev.IsBearish() && curr.IsBullish() && engulfs && strongBody
}

func isBearishEngulfing(w []model.Bar) bool {
	prev, curr := w[len(w)-2], w[len(w)-1]
	engulfs := curr.Open >= prev.Close && curr.Close <= prev.Open
	strongBody := curr.Body() > curr.Range()*0.6
	return prev.IsBullish() && curr.IsBearish() && engulfs && strongBody
}

func isHammer(w []model.Bar) bool {
	c := w[len(w)-1]
	smallBody := c.Body() < c.Range()*0.3
	return smallBody && c.LowerShadow() > c.Body()*2 && c.UpperShadow() < c.Body()
}

func isShootingStar(w []model.Bar) bool {
	c := w[len(w)-1]
	smallBody := c.Body() < c.Range()*0.3
	return smallBody && c.UpperShadow() > c.Body()*2 && c.LowerShadow() < c.Body()
}

func isMorningStar(w []model.Bar) bool {
	first, second, third := w[len(w)-3], w[len(w)-2], w[len(w)-1]
	secondSmall := second.Body() < first.Body()*0.3
	thirdLarge := third.Body() > first.Body()*0.5
	closesHigh := third.Close > (first.Open+first.Close)/2
	return first.IsBearish() && secondSmall && third.IsBullish() && thirdLarge && closesHigh
}

func isEveningStar(w []model.Bar) bool {
	first, second, third := w[len(w)-3], w[len(w)-2], w[len(w)-1]
	secondSmall := second.Body() < first.Body()*0.3
	thirdLarge := third.Body() > first.Body()*0.5
	closesLow := third.Close < (first.Open+first.Close)/2
	return first.IsBullish() && secondSmall && third.IsBearish() && thirdLarge && closesLow
}

func isBullishPinBar(w []model.Bar) bool {
	c := w[len(w)-1]
	longLowerWick := c.LowerShadow() > c.Range()*0.6
	smallUpper := c.UpperShadow() < c.Range()*0.2
	return longLowerWick && smallUpper && c.Close >= c.Open
}

func isBearishPinBar(w []model.Bar) bool {
	c := w[len(w)-1]
	longUpperWick := c.UpperShadow() > c.Range()*0.6
	smallLower := c.LowerShadow() < c.Range()*0.2
	return longUpperWick && smallLower && c.Close <= c.Open
}
