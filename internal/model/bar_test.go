package model

import "testing"

func TestBarGeometry(t *testing.T) {
	b := Bar{Open: 100.0, High: 101.0, Low: 98.5, Close: 99.0}
	if !b.IsBearish() || b.IsBullish() {
		t.Error("close below open must be bearish")
	}
	if b.Body() != 1.0 {
		t.Errorf("expected body 1.0, got %.2f", b.Body())
	}
	if b.Range() != 2.5 {
		t.Errorf("expected range 2.5, got %.2f", b.Range())
	}
	if b.UpperShadow() != 1.0 {
		t.Errorf("expected upper shadow 1.0, got %.2f", b.UpperShadow())
	}
	if b.LowerShadow() != 0.5 {
		t.Errorf("expected lower shadow 0.5, got %.2f", b.LowerShadow())
	}
}

func TestBarDoji(t *testing.T) {
	b := Bar{Open: 100, High: 100.5, Low: 99.5, Close: 100}
	if b.IsBullish() || b.IsBearish() {
		t.Error("zero body is neither bullish nor bearish")
	}
}

func TestCloses(t *testing.T) {
	bars := []Bar{{Close: 1}, {Close: 2}, {Close: 3}}
	closes := Closes(bars)
	if len(closes) != 3 || closes[0] != 1 || closes[2] != 3 {
		t.Errorf("unexpected closes: %v", closes)
	}
}
