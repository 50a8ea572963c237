package calculator

import (
	"fmt"

	"SignalSentry/internal/model"
)

// ConfirmationParams controls RSI and volume confirmation thresholds.
type ConfirmationParams struct {
	RSIPeriod             int
	RSIOversold           float64
	RSIOverbought         float64
	VolumeSpikeMultiplier float64
}

// Confirm scores RSI and volume confirmation for a proposed direction.
// RSI confirms a buy when approaching or inside the oversold zone
// (rsi < oversold+10) and a sell when approaching or inside the overbought
// zone (rsi > overbought-10). Volume confirms on a spike versus the recent
// average. Both confirmed is Strong, one is Medium, neither is Weak.
// Fewer than 20 bars cannot confirm anything: the result is neutral and Weak.
func Confirm(bars []model.Bar, dir model.Direction, p ConfirmationParams) (model.Confirmation, error) {
	if len(bars) < 20 {
		return model.Confirmation{
			RSIValue:    50.0,
			VolumeRatio: 1.0,
			Strength:    model.StrengthWeak,
		}, nil
	}

	rsi, err := RSI(bars, p.RSIPeriod)
	if err != nil {
		return model.Confirmation{}, fmt.Errorf("rsi: %w", err)
	}

	var rsiConfirmed bool
	switch dir {
	case model.DirectionBuy:
		rsiConfirmed = rsi < p.RSIOversold+10
	case model.DirectionSell:
		rsiConfirmed = rsi > p.RSIOverbought-10
	}

	ratio, volConfirmed := VolumeRatio(bars, p.VolumeSpikeMultiplier)

	strength := model.StrengthWeak
	if rsiConfirmed && volConfirmed {
		strength = model.StrengthStrong
	} else if rsiConfirmed || volConfirmed {
		strength = model.StrengthMedium
	}

	return model.Confirmation{
		RSIValue:        rsi,
		RSIConfirmed:    rsiConfirmed,
		VolumeRatio:     ratio,
		VolumeConfirmed: volConfirmed,
		Strength:        strength,
	}, nil
}
