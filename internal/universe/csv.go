package universe

import (
	"context"
	"encoding/csv"
	"os"
)

// CSVProvider reads symbols from a local CSV file carrying a Symbol or
// Ticker column. Plain TSX root symbols are fine; the .TO suffix is added
// during normalization.
type CSVProvider struct {
	Path string
}

func (p *CSVProvider) Name() string { return "csv" }

func (p *CSVProvider) Fetch(_ context.Context) ([]string, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, &AcquisitionError{Source: p.Path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, &MalformedSourceError{Source: p.Path, Reason: err.Error()}
	}
	if len(records) < 2 {
		return nil, ErrEmptyUniverse
	}
	col := symbolColumnIndex(records[0])
	if col < 0 {
		return nil, &MalformedSourceError{Source: p.Path, Reason: "no Symbol or Ticker column"}
	}
	var raw []string
	for _, rec := range records[1:] {
		if col < len(rec) {
			raw = append(raw, rec[col])
		}
	}
	symbols := Normalize(raw)
	if len(symbols) == 0 {
		return nil, ErrEmptyUniverse
	}
	return symbols, nil
}
