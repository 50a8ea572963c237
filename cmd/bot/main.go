package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SignalSentry/internal/approval"
	"SignalSentry/internal/calculator"
	"SignalSentry/internal/chart"
	"SignalSentry/internal/collector"
	"SignalSentry/internal/config"
	"SignalSentry/internal/logging"
	"SignalSentry/internal/notifier"
	"SignalSentry/internal/recorder"
	"SignalSentry/internal/scanner"
	"SignalSentry/internal/scheduler"
)

func main() {
	// Tee logs so the /logs command can replay recent lines.
	logBuf := logging.NewRecentBuffer(200)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(io.MultiWriter(os.Stdout, logBuf))
	log.Println("[INFO] SignalSentry starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case "binance":
		fetcher = collector.NewBinanceFetcher(cfg.DataSource.APIKey, cfg.DataSource.APISecret)
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init tracker and collector
	tracker := scanner.NewTracker()
	col := collector.New(fetcher, collector.Options{
		Interval: cfg.DataSource.Interval,
		Limit:    cfg.DataSource.Lookback,
		CacheTTL: time.Duration(cfg.Scan.CacheTTLSeconds) * time.Second,
		Timeout:  time.Duration(cfg.Scan.FetchTimeoutSec) * time.Second,
		Counter:  tracker,
	})

	// Init scanner
	sc := scanner.New(scanner.Config{
		Symbols:     cfg.DataSource.Symbols,
		Workers:     cfg.Scan.Workers,
		MinBars:     cfg.Scan.MinBars,
		SRLookback:  cfg.Strategy.SRLookback,
		SRThreshold: cfg.Strategy.SRThresholdPct / 100,
		Confirmation: calculator.ConfirmationParams{
			RSIPeriod:             cfg.Strategy.RSIPeriod,
			RSIOversold:           cfg.Strategy.RSIOversold,
			RSIOverbought:         cfg.Strategy.RSIOverbought,
			VolumeSpikeMultiplier: cfg.Strategy.VolumeSpikeMultiplier,
		},
		MinRiskReward: cfg.Risk.MinRiskReward,
		StopLossPct:   cfg.Risk.StopLossPct,
		Target1Pct:    cfg.Risk.Target1Pct,
		Target2Pct:    cfg.Risk.Target2Pct,
	}, col, tracker)

	// Init Telegram notifier and approval store
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	ap := approval.NewStore(cfg.Telegram.ApprovalFile, cfg.Telegram.AdminUserID)

	// Init chart generator
	var gen *chart.Generator
	if cfg.Chart.Enabled {
		gen, err = chart.NewGenerator(cfg.Chart.Dir)
		if err != nil {
			log.Printf("[WARN] init chart generator failed, charts disabled: %v", err)
			gen = nil
		}
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Market session
	session, err := scheduler.NewSession(cfg.Market.Timezone, cfg.Market.Open, cfg.Market.Close)
	if err != nil {
		log.Fatalf("[FATAL] market session: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	retention := time.Duration(cfg.Chart.RetentionDays) * 24 * time.Hour
	sched := scheduler.New(ctx, sc, tracker, tn, gen, rec, ap, logBuf, session, fetcher.Name(), retention)
	if err := sched.RegisterAll(cfg.Scan.Cron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: scan immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] SignalSentry is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] SignalSentry stopped")
}
