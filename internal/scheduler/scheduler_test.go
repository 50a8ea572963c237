package scheduler

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"SignalSentry/internal/approval"
	"SignalSentry/internal/calculator"
	"SignalSentry/internal/collector"
	"SignalSentry/internal/logging"
	"SignalSentry/internal/notifier"
	"SignalSentry/internal/recorder"
	"SignalSentry/internal/scanner"
)

const adminID = int64(42)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()

	fetcher := collector.NewMockFetcher()
	tracker := scanner.NewTracker()
	col := collector.New(fetcher, collector.Options{Counter: tracker})
	sc := scanner.New(scanner.Config{
		Symbols:     nil, // nothing to scan in command tests
		Workers:     2,
		MinBars:     50,
		SRLookback:  50,
		SRThreshold: 0.005,
		Confirmation: calculator.ConfirmationParams{
			RSIPeriod: 14, RSIOversold: 30, RSIOverbought: 70, VolumeSpikeMultiplier: 1.5,
		},
		MinRiskReward: 1.5,
		StopLossPct:   0.8,
		Target1Pct:    1.2,
		Target2Pct:    2.0,
	}, col, tracker)

	ap := approval.NewStore(filepath.Join(t.TempDir(), "approved.json"), adminID)
	tn := notifier.NewTelegramNotifier("test-token", "1", "")
	session, err := NewSession("", "", "")
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	return New(context.Background(), sc, tracker, tn, nil,
		recorder.NewNoopRecorder(), ap, logging.NewRecentBuffer(50), session, "mock", 24*time.Hour)
}

func TestHandleCommand_UnapprovedUser(t *testing.T) {
	s := newTestScheduler(t)
	reply := s.HandleCommand("/status", 999)
	if !strings.Contains(reply, "Not authorized") {
		t.Errorf("expected authorization refusal, got %q", reply)
	}
	if !strings.Contains(reply, "999") {
		t.Errorf("refusal should include the requester id, got %q", reply)
	}
}

func TestHandleCommand_AddUserAdminOnly(t *testing.T) {
	s := newTestScheduler(t)

	// Admin approves a user.
	reply := s.HandleCommand("/adduser 100", adminID)
	if !strings.Contains(reply, "approved") {
		t.Fatalf("expected approval confirmation, got %q", reply)
	}

	// The approved user can now issue commands but cannot approve others.
	if reply := s.HandleCommand("/status", 100); strings.Contains(reply, "Not authorized") {
		t.Errorf("approved user should have access, got %q", reply)
	}
	if reply := s.HandleCommand("/adduser 200", 100); !strings.Contains(reply, "admin") {
		t.Errorf("expected admin-only refusal, got %q", reply)
	}
}

func TestHandleCommand_AddUserBadArgument(t *testing.T) {
	s := newTestScheduler(t)
	if reply := s.HandleCommand("/adduser", adminID); !strings.Contains(reply, "Usage") {
		t.Errorf("expected usage hint, got %q", reply)
	}
	if reply := s.HandleCommand("/adduser abc", adminID); !strings.Contains(reply, "Usage") {
		t.Errorf("expected usage hint for non-numeric id, got %q", reply)
	}
}

func TestHandleCommand_AutotradeToggle(t *testing.T) {
	s := newTestScheduler(t)
	if reply := s.HandleCommand("/autotrade", adminID); !strings.Contains(reply, "paused") {
		t.Errorf("expected pause on first toggle, got %q", reply)
	}
	if reply := s.HandleCommand("/autotrade", adminID); !strings.Contains(reply, "resumed") {
		t.Errorf("expected resume on second toggle, got %q", reply)
	}
	if reply := s.HandleCommand("/autotrade off", adminID); !strings.Contains(reply, "paused") {
		t.Errorf("expected explicit off to pause, got %q", reply)
	}
	if reply := s.HandleCommand("/autotrade on", adminID); !strings.Contains(reply, "resumed") {
		t.Errorf("expected explicit on to resume, got %q", reply)
	}
	if reply := s.HandleCommand("/autotrade maybe", adminID); !strings.Contains(reply, "Usage") {
		t.Errorf("expected usage hint for bad argument, got %q", reply)
	}
}

func TestHandleCommand_ScanAndStatus(t *testing.T) {
	s := newTestScheduler(t)

	reply := s.HandleCommand("/scan", adminID)
	if !strings.Contains(reply, "Scan Complete") {
		t.Errorf("expected scan summary, got %q", reply)
	}

	reply = s.HandleCommand("/status", adminID)
	if !strings.Contains(reply, "Bot Status") || !strings.Contains(reply, "mock") {
		t.Errorf("expected status with data source, got %q", reply)
	}
}

func TestHandleCommand_Logs(t *testing.T) {
	s := newTestScheduler(t)
	s.Logs.Write([]byte("something happened\n"))
	reply := s.HandleCommand("/logs", adminID)
	if !strings.Contains(reply, "something happened") {
		t.Errorf("expected recent log line in reply, got %q", reply)
	}
}

func TestHandleCommand_UnknownShowsHelp(t *testing.T) {
	s := newTestScheduler(t)
	reply := s.HandleCommand("/bogus", adminID)
	if !strings.Contains(reply, "/help") {
		t.Errorf("expected help hint, got %q", reply)
	}
}

func TestSession_AlwaysOpenWhenUnconfigured(t *testing.T) {
	session, err := NewSession("", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !session.IsOpen(time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)) { // a Sunday
		t.Error("unconfigured session must always be open")
	}
}

func TestSession_TradingHours(t *testing.T) {
	session, err := NewSession("UTC", "09:00", "17:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tests := []struct {
		name string
		when time.Time
		open bool
	}{
		{"weekday mid-session", time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), true}, // Monday
		{"weekday at open", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), true},
		{"weekday at close", time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC), true},
		{"weekday before open", time.Date(2026, 3, 2, 8, 59, 0, 0, time.UTC), false},
		{"weekday after close", time.Date(2026, 3, 2, 17, 1, 0, 0, time.UTC), false},
		{"saturday", time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC), false},
		{"sunday", time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		if got := session.IsOpen(tt.when); got != tt.open {
			t.Errorf("%s: expected open=%v, got %v", tt.name, tt.open, got)
		}
	}
}

func TestSession_BadTimezone(t *testing.T) {
	if _, err := NewSession("Not/AZone", "09:00", "17:00"); err == nil {
		t.Error("expected error for unknown timezone")
	}
}
