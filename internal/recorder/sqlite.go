package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"SignalSentry/internal/model"
)

// SQLiteRecorder persists signals and scan runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the history can be read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signals (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			symbol           TEXT NOT NULL,
			direction        TEXT NOT NULL,
			pattern          TEXT,
			pattern_strength TEXT,
			entry            REAL,
			stop_loss        REAL,
			target1          REAL,
			target2          REAL,
			risk_reward      REAL,
			sr_kind          TEXT,
			sr_level         REAL,
			rsi_value        REAL,
			rsi_confirmed    INTEGER,
			volume_ratio     REAL,
			volume_confirmed INTEGER,
			structure_score  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ts ON signals(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol)`,

		`CREATE TABLE IF NOT EXISTS scans (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			duration_ms     INTEGER,
			symbols_scanned INTEGER,
			signals_found   INTEGER,
			errors          INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_ts ON scans(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSignal(sig *model.Signal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signals
		(timestamp, symbol, direction, pattern, pattern_strength,
		 entry, stop_loss, target1, target2, risk_reward,
		 sr_kind, sr_level,
		 rsi_value, rsi_confirmed, volume_ratio, volume_confirmed, structure_score)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		sig.Timestamp.Unix(), sig.Symbol, string(sig.Direction),
		sig.Pattern.Name, string(sig.Pattern.Strength),
		sig.Entry, sig.StopLoss, sig.Target1, sig.Target2, sig.RiskReward,
		string(sig.SRKind), sig.SRLevel,
		sig.Confirmation.RSIValue, boolToInt(sig.Confirmation.RSIConfirmed),
		sig.Confirmation.VolumeRatio, boolToInt(sig.Confirmation.VolumeConfirmed),
		sig.StructureScore,
	)
	return err
}

func (r *SQLiteRecorder) RecordScan(report *model.ScanReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scans
		(timestamp, duration_ms, symbols_scanned, signals_found, errors)
		VALUES (?,?,?,?,?)`,
		report.StartTime.Unix(), report.Duration/time.Millisecond,
		report.SymbolsScanned, report.SignalsFound, report.Errors,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
