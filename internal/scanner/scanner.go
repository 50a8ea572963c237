package scanner

import (
	"context"
	"log"
	"math"
	"sync"
	"time"

	"SignalSentry/internal/calculator"
	"SignalSentry/internal/collector"
	"SignalSentry/internal/model"
	"SignalSentry/internal/pattern"
	"SignalSentry/internal/structure"
)

// Config holds the strategy and risk parameters for one scanner instance.
type Config struct {
	Symbols       []string
	Workers       int
	MinBars       int
	SRLookback    int
	SRThreshold   float64 // relative, e.g. 0.005
	Confirmation  calculator.ConfirmationParams
	MinRiskReward float64
	StopLossPct   float64 // percent, e.g. 0.8
	Target1Pct    float64
	Target2Pct    float64
}

// Scanner runs the signal pipeline across a symbol universe.
type Scanner struct {
	cfg       Config
	collector *collector.Collector
	patterns  *pattern.Detector
	structure *structure.Analyzer
	tracker   *Tracker
}

func New(cfg Config, col *collector.Collector, tracker *Tracker) *Scanner {
	if cfg.Workers <= 0 {
		cfg.Workers = 10
	}
	if cfg.MinBars <= 0 {
		cfg.MinBars = 50
	}
	return &Scanner{
		cfg:       cfg,
		collector: col,
		patterns:  pattern.NewDetector(),
		structure: structure.NewAnalyzer(),
		tracker:   tracker,
	}
}

// ScanSymbol runs the gate pipeline for one symbol. A gate failure is a
// soft outcome: (nil, nil). Only fetch failures surface as errors.
func (s *Scanner) ScanSymbol(ctx context.Context, symbol string) (*model.Signal, error) {
	bars, err := s.collector.GetBars(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if len(bars) < s.cfg.MinBars {
		return nil, nil
	}

	price := bars[len(bars)-1].Close

	highs, lows := calculator.FindSwingPoints(bars, s.cfg.SRLookback)
	supports := calculator.ClusterLevels(lows, s.cfg.SRThreshold, model.LevelSupport)
	resistances := calculator.ClusterLevels(highs, s.cfg.SRThreshold, model.LevelResistance)

	srLevel := calculator.ClassifyProximity(price, supports, resistances, s.cfg.SRThreshold)
	if srLevel == nil {
		return nil, nil
	}

	matches := s.patterns.Detect(bars)
	if len(matches) == 0 {
		return nil, nil
	}

	// Support proximity admits only buy patterns, resistance only sells.
	wantDir := model.DirectionBuy
	if srLevel.Kind == model.LevelResistance {
		wantDir = model.DirectionSell
	}

	structSet := s.structure.Analyze(bars)

	for _, m := range matches {
		if m.Direction != wantDir {
			continue
		}

		conf, err := calculator.Confirm(bars, m.Direction, s.cfg.Confirmation)
		if err != nil {
			return nil, err
		}
		if !conf.RSIConfirmed && !conf.VolumeConfirmed {
			continue
		}

		score := s.structure.Score(structSet, m.Direction)
		if score < 1 {
			continue
		}

		entry := price
		var stop, target1, target2 float64
		if m.Direction == model.DirectionBuy {
			stop = entry * (1 - s.cfg.StopLossPct/100)
			target1 = entry * (1 + s.cfg.Target1Pct/100)
			target2 = entry * (1 + s.cfg.Target2Pct/100)
		} else {
			stop = entry * (1 + s.cfg.StopLossPct/100)
			target1 = entry * (1 - s.cfg.Target1Pct/100)
			target2 = entry * (1 - s.cfg.Target2Pct/100)
		}

		risk := math.Abs(entry - stop)
		reward := math.Abs(target1 - entry)
		ratio := 0.0
		if risk > 0 {
			ratio = reward / risk
		}
		if ratio < s.cfg.MinRiskReward {
			continue
		}

		return &model.Signal{
			Symbol:         symbol,
			Direction:      m.Direction,
			Pattern:        m,
			Entry:          entry,
			StopLoss:       stop,
			Target1:        target1,
			Target2:        target2,
			RiskReward:     ratio,
			SRKind:         srLevel.Kind,
			SRLevel:        srLevel.Price,
			Supports:       supports,
			Resistances:    resistances,
			Confirmation:   conf,
			Structure:      structSet,
			StructureScore: score,
			Bars:           bars,
			Timestamp:      time.Now(),
		}, nil
	}

	return nil, nil
}

// ScanAll fans the pipeline out across the universe with a bounded worker
// pool and collects results as they complete. One symbol's failure or panic
// is counted and skipped, never aborting the batch.
func (s *Scanner) ScanAll(ctx context.Context) ([]model.Signal, *model.ScanReport) {
	start := time.Now()

	type result struct {
		sig    *model.Signal
		failed bool
	}

	symbolChan := make(chan string)
	resultChan := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < s.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range symbolChan {
				sig, failed := s.scanOne(ctx, symbol)
				resultChan <- result{sig: sig, failed: failed}
			}
		}()
	}

	go func() {
		for _, symbol := range s.cfg.Symbols {
			symbolChan <- symbol
		}
		close(symbolChan)
		wg.Wait()
		close(resultChan)
	}()

	var signals []model.Signal
	errCount := 0
	for r := range resultChan {
		if r.failed {
			errCount++
		}
		if r.sig == nil {
			continue
		}
		signals = append(signals, *r.sig)
		if s.tracker != nil {
			s.tracker.IncrementSignals()
		}
	}

	duration := time.Since(start)
	if s.tracker != nil {
		s.tracker.RecordScanTime(duration)
	}

	return signals, &model.ScanReport{
		StartTime:      start,
		Duration:       duration,
		SymbolsScanned: len(s.cfg.Symbols),
		SignalsFound:   len(signals),
		Errors:         errCount,
	}
}

// scanOne wraps ScanSymbol with panic recovery so a malformed series cannot
// take down the worker.
func (s *Scanner) scanOne(ctx context.Context, symbol string) (sig *model.Signal, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] scan %s panicked: %v", symbol, r)
			if s.tracker != nil {
				s.tracker.IncrementErrors()
			}
			sig, failed = nil, true
		}
	}()

	sig, err := s.ScanSymbol(ctx, symbol)
	if err != nil {
		log.Printf("[WARN] scan %s: %v", symbol, err)
		return nil, true
	}
	return sig, false
}
