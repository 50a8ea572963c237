package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"SignalSentry/internal/approval"
	"SignalSentry/internal/chart"
	"SignalSentry/internal/logging"
	"SignalSentry/internal/model"
	"SignalSentry/internal/notifier"
	"SignalSentry/internal/recorder"
	"SignalSentry/internal/scanner"
)

// Scheduler manages the periodic scan task, chart cleanup, and user
// commands. Scanning is toggled at runtime via /autotrade.
type Scheduler struct {
	Cron      *cron.Cron
	Scanner   *scanner.Scanner
	Tracker   *scanner.Tracker
	Notifier  *notifier.TelegramNotifier
	Charts    *chart.Generator // nil disables chart rendering
	Recorder  recorder.Recorder
	Approval  *approval.Store
	Logs      *logging.RecentBuffer
	Market    *Session
	Source    string
	Retention time.Duration
	Ctx       context.Context

	running atomic.Bool
}

func New(ctx context.Context, sc *scanner.Scanner, tr *scanner.Tracker, tn *notifier.TelegramNotifier,
	gen *chart.Generator, rec recorder.Recorder, ap *approval.Store, logs *logging.RecentBuffer,
	market *Session, source string, retention time.Duration) *Scheduler {
	s := &Scheduler{
		Cron:      cron.New(),
		Scanner:   sc,
		Tracker:   tr,
		Notifier:  tn,
		Charts:    gen,
		Recorder:  rec,
		Approval:  ap,
		Logs:      logs,
		Market:    market,
		Source:    source,
		Retention: retention,
		Ctx:       ctx,
	}
	s.running.Store(true)
	return s
}

// RegisterAll registers the scan task and the daily chart cleanup.
func (s *Scheduler) RegisterAll(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if s.Charts != nil {
		if _, err := s.Cron.AddFunc("@daily", s.cleanupTask); err != nil {
			return fmt.Errorf("register cleanup task: %w", err)
		}
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes a scan immediately, regardless of the running flag.
func (s *Scheduler) RunScanNow() *model.ScanReport {
	return s.runScan()
}

func (s *Scheduler) scanTask() {
	if !s.running.Load() {
		return
	}
	if !s.Market.IsOpen(time.Now()) {
		return
	}
	s.runScan()
}

func (s *Scheduler) runScan() *model.ScanReport {
	log.Println("[INFO] running scan")
	signals, report := s.Scanner.ScanAll(s.Ctx)
	log.Printf("[INFO] scan done: %d symbols, %d signals, %d errors in %v",
		report.SymbolsScanned, report.SignalsFound, report.Errors, report.Duration)

	if err := s.Recorder.RecordScan(report); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}

	for i := range signals {
		s.deliverSignal(&signals[i])
	}
	return report
}

// deliverSignal formats, renders and sends one signal. Chart failures
// degrade to a text-only message.
func (s *Scheduler) deliverSignal(sig *model.Signal) {
	text := notifier.FormatSignal(sig)

	sent := false
	if s.Charts != nil {
		path, err := s.Charts.Render(sig)
		if err != nil {
			log.Printf("[WARN] render chart for %s: %v", sig.Symbol, err)
		} else if err := s.Notifier.SendDocument(path, text); err != nil {
			log.Printf("[WARN] send chart for %s: %v", sig.Symbol, err)
		} else {
			sent = true
		}
	}
	if !sent {
		if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
			log.Printf("[ERROR] send signal for %s: %v", sig.Symbol, err)
		}
	}

	if err := s.Recorder.RecordSignal(sig); err != nil {
		log.Printf("[ERROR] record signal for %s: %v", sig.Symbol, err)
	}
}

func (s *Scheduler) cleanupTask() {
	if err := s.Charts.CleanupOld(s.Retention); err != nil {
		log.Printf("[WARN] chart cleanup: %v", err)
	}
}

// HandleCommand processes a user command and returns a reply. Unknown
// users get nothing except a hint to request access.
func (s *Scheduler) HandleCommand(command string, userID int64) string {
	if !s.Approval.IsApproved(userID) {
		return fmt.Sprintf("⛔ Not authorized. Ask the admin to run /adduser %d", userID)
	}

	cmd, arg := splitCommand(command)
	switch cmd {
	case "/start":
		return "👋 Signal scanner online. Use /help for commands."
	case "/autotrade":
		return s.handleAutotrade(arg)
	case "/scan":
		report := s.RunScanNow()
		return notifier.FormatScanReport(report)
	case "/status":
		return notifier.FormatStatus(s.running.Load(), s.Market.IsOpen(time.Now()), s.Source, s.Tracker.Stats())
	case "/logs":
		lines := s.Logs.Lines(20)
		if len(lines) == 0 {
			return "No recent logs"
		}
		return "📜 <b>Recent Logs</b>\n\n<pre>" + strings.Join(lines, "\n") + "</pre>"
	case "/adduser":
		return s.handleAddUser(arg, userID)
	case "/help":
		return helpText
	default:
		return "Unknown command. " + helpText
	}
}

// handleAutotrade sets the running flag from an explicit on/off argument,
// or toggles it when no argument is given.
func (s *Scheduler) handleAutotrade(arg string) string {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "on":
		s.running.Store(true)
	case "off":
		s.running.Store(false)
	case "":
		s.running.Store(!s.running.Load())
	default:
		return "Usage: /autotrade [on|off]"
	}
	if s.running.Load() {
		return "▶️ Scanning resumed"
	}
	return "⏸ Scanning paused"
}

func (s *Scheduler) handleAddUser(arg string, requester int64) string {
	if !s.Approval.IsAdmin(requester) {
		return "⛔ Only the admin can approve users"
	}
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id == 0 {
		return "Usage: /adduser <telegram user id>"
	}
	added, err := s.Approval.Add(id)
	if err != nil {
		log.Printf("[ERROR] add user %d: %v", id, err)
		return "Failed to save approval"
	}
	if !added {
		return fmt.Sprintf("User %d is already approved", id)
	}
	return fmt.Sprintf("✅ User %d approved", id)
}

func splitCommand(text string) (cmd, arg string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

const helpText = `Available commands:
/start - greeting
/autotrade [on|off] - toggle or set scanning
/scan - run a scan now
/status - bot and scan stats
/logs - recent log lines
/adduser <id> - approve a user (admin)
/help - this message`
