package model

import "time"

// Detection is one symbol whose smoothed series matched the reversal pattern.
type Detection struct {
	Symbol string
	Bars   []OHLCV // trailing Heikin-Ashi bars, oldest first
	At     time.Time
}

// ScanReport summarizes one full pass over the symbol universe.
type ScanReport struct {
	RunID      string
	Source     string
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int // universe size after the limit cut
	Scanned    int
	Skipped    int // fewer than four usable daily bars
	Errors     int
	Detections []Detection
}
