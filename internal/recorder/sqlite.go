package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	"CandleScout/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists scan history to a SQLite database.
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

	// WAL mode so ad-hoc queries can read while the bot writes.
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
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			source      TEXT,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL,
			total       INTEGER,
			scanned     INTEGER,
			skipped     INTEGER,
			errors      INTEGER,
			detections  INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON scan_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS detections (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			symbol      TEXT NOT NULL,
			detected_at INTEGER NOT NULL,
			red1_open   REAL, red1_close REAL,
			red2_open   REAL, red2_close REAL,
			red3_open   REAL, red3_close REAL,
			green_open  REAL, green_close REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_detections_run ON detections(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_detections_symbol ON detections(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordScan stores the run summary and, per detection, the four-bar window
// that triggered the signal.
func (r *SQLiteRecorder) RecordScan(report *model.ScanReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scan_runs
		(run_id, source, started_at, finished_at, total, scanned, skipped, errors, detections)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		report.RunID, report.Source,
		report.StartedAt.Unix(), report.FinishedAt.Unix(),
		report.Total, report.Scanned, report.Skipped, report.Errors,
		len(report.Detections),
	)
	if err != nil {
		return fmt.Errorf("insert scan run: %w", err)
	}

	for _, d := range report.Detections {
		if len(d.Bars) < 4 {
			continue
		}
		w := d.Bars[len(d.Bars)-4:]
		_, err := r.db.Exec(`INSERT INTO detections
			(run_id, symbol, detected_at,
			 red1_open, red1_close, red2_open, red2_close,
			 red3_open, red3_close, green_open, green_close)
			VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
			report.RunID, d.Symbol, d.At.Unix(),
			w[0].Open, w[0].Close, w[1].Open, w[1].Close,
			w[2].Open, w[2].Close, w[3].Open, w[3].Close,
		)
		if err != nil {
			return fmt.Errorf("insert detection %s: %w", d.Symbol, err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
