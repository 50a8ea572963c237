package scheduler

import (
	"fmt"
	"time"
)

// Session describes market trading hours. A zero Session (empty timezone)
// treats the market as always open, which suits 24/7 venues like crypto.
type Session struct {
	loc       *time.Location
	openHour  int
	openMin   int
	closeHour int
	closeMin  int
	always    bool
}

// NewSession parses trading hours in "15:04" form for the given timezone.
// Empty arguments produce an always-open session.
func NewSession(timezone, open, close string) (*Session, error) {
	if timezone == "" || open == "" || close == "" {
		return &Session{always: true}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	openT, err := time.Parse("15:04", open)
	if err != nil {
		return nil, fmt.Errorf("parse open time %q: %w", open, err)
	}
	closeT, err := time.Parse("15:04", close)
	if err != nil {
		return nil, fmt.Errorf("parse close time %q: %w", close, err)
	}
	return &Session{
		loc:       loc,
		openHour:  openT.Hour(),
		openMin:   openT.Minute(),
		closeHour: closeT.Hour(),
		closeMin:  closeT.Minute(),
	}, nil
}

// IsOpen reports whether now falls inside trading hours on a weekday.
func (s *Session) IsOpen(now time.Time) bool {
	if s.always {
		return true
	}
	local := now.In(s.loc)
	if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	minutes := local.Hour()*60 + local.Minute()
	open := s.openHour*60 + s.openMin
	close := s.closeHour*60 + s.closeMin
	return minutes >= open && minutes <= close
}
