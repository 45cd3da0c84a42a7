package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"CandleScout/internal/model"
)

func TestSQLiteRecorder_RecordScan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scout.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer r.Close()

	now := time.Now()
	report := &model.ScanReport{
		RunID:      "run-42",
		Source:     "csv",
		StartedAt:  now.Add(-time.Minute),
		FinishedAt: now,
		Total:      10,
		Scanned:    10,
		Skipped:    1,
		Errors:     2,
		Detections: []model.Detection{
			{
				Symbol: "RY.TO",
				At:     now,
				Bars: []model.OHLCV{
					{Open: 10, Close: 9},
					{Open: 9, Close: 8},
					{Open: 8, Close: 7},
					{Open: 7, Close: 8},
				},
			},
		},
	}
	if err := r.RecordScan(report); err != nil {
		t.Fatalf("record scan: %v", err)
	}

	var runs, detections int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM scan_runs").Scan(&runs); err != nil {
		t.Fatal(err)
	}
	if err := r.db.QueryRow("SELECT COUNT(*) FROM detections WHERE run_id = ?", "run-42").Scan(&detections); err != nil {
		t.Fatal(err)
	}
	if runs != 1 || detections != 1 {
		t.Errorf("expected 1 run and 1 detection, got %d and %d", runs, detections)
	}

	var greenClose float64
	if err := r.db.QueryRow("SELECT green_close FROM detections WHERE symbol = ?", "RY.TO").Scan(&greenClose); err != nil {
		t.Fatal(err)
	}
	if greenClose != 8 {
		t.Errorf("expected green close 8, got %v", greenClose)
	}
}

func TestSQLiteRecorder_ReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scout.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	r.Close()

	r2, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r2.Close()

	report := &model.ScanReport{RunID: "run-43", StartedAt: time.Now(), FinishedAt: time.Now()}
	if err := r2.RecordScan(report); err != nil {
		t.Errorf("record after reopen: %v", err)
	}
}
