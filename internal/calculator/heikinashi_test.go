package calculator

import (
	"math"
	"testing"
	"time"

	"CandleScout/internal/model"
)

func mkBars(ohlc ...[4]float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(ohlc))
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range ohlc {
		bars[i] = model.OHLCV{
			Time: day.AddDate(0, 0, i),
			Open: v[0], High: v[1], Low: v[2], Close: v[3],
		}
	}
	return bars
}

func TestHeikinAshi_ShapeAndEmpty(t *testing.T) {
	if got := HeikinAshi(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
	bars := mkBars([4]float64{10, 12, 9, 11}, [4]float64{11, 13, 10, 12}, [4]float64{12, 12, 8, 9})
	ha := HeikinAshi(bars)
	if len(ha) != len(bars) {
		t.Fatalf("expected %d smoothed bars, got %d", len(bars), len(ha))
	}
	for i := range ha {
		if !ha[i].Time.Equal(bars[i].Time) {
			t.Errorf("bar %d: time changed by the transform", i)
		}
	}
}

func TestHeikinAshi_SingleBar(t *testing.T) {
	ha := HeikinAshi(mkBars([4]float64{10, 12, 9, 11}))
	if len(ha) != 1 {
		t.Fatalf("expected 1 smoothed bar, got %d", len(ha))
	}
	if want := (10.0 + 12 + 9 + 11) / 4; ha[0].Close != want {
		t.Errorf("close: expected %.4f, got %.4f", want, ha[0].Close)
	}
	if want := (10.0 + 11) / 2; ha[0].Open != want {
		t.Errorf("seed open: expected %.4f, got %.4f", want, ha[0].Open)
	}
}

func TestHeikinAshi_SeedAndRecurrence(t *testing.T) {
	bars := mkBars(
		[4]float64{100, 101, 97, 98},
		[4]float64{98, 99, 95, 96},
		[4]float64{96, 97, 93, 94},
		[4]float64{94, 96, 93, 95},
	)
	ha := HeikinAshi(bars)

	// Seed uses the raw open and raw close of day 0.
	if want := (bars[0].Open + bars[0].Close) / 2; ha[0].Open != want {
		t.Errorf("seed: expected %.4f, got %.4f", want, ha[0].Open)
	}
	for i := 1; i < len(ha); i++ {
		want := (ha[i-1].Open + ha[i-1].Close) / 2
		if ha[i].Open != want {
			t.Errorf("bar %d: open recurrence expected %.4f, got %.4f", i, want, ha[i].Open)
		}
	}
}

func TestHeikinAshi_Bounding(t *testing.T) {
	bars := mkBars(
		[4]float64{10, 15, 8, 12},
		[4]float64{12, 13, 6, 7},
		[4]float64{7, 20, 7, 19},
		[4]float64{19, 19.5, 14, 15},
	)
	for i, h := range HeikinAshi(bars) {
		if h.Low > h.Open || h.Low > h.Close || h.High < h.Open || h.High < h.Close {
			t.Errorf("bar %d: low %.4f / high %.4f do not bound open %.4f close %.4f",
				i, h.Low, h.High, h.Open, h.Close)
		}
	}
}

func TestHeikinAshi_Idempotent(t *testing.T) {
	bars := mkBars(
		[4]float64{50, 52, 49, 51},
		[4]float64{51, 53, 50, 52},
		[4]float64{52, 52.5, 48, 49},
	)
	first := HeikinAshi(bars)
	second := HeikinAshi(bars)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("bar %d: repeated transform differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestHeikinAshi_NaNPropagates(t *testing.T) {
	bars := mkBars(
		[4]float64{10, 11, 9, 10},
		[4]float64{10, 11, 9, math.NaN()},
		[4]float64{10, 11, 9, 10},
		[4]float64{10, 11, 9, 10},
	)
	ha := HeikinAshi(bars)
	if !math.IsNaN(ha[1].Close) {
		t.Error("expected NaN close at the malformed bar")
	}
	// Once in the recurrence, every later open stays NaN.
	for i := 2; i < len(ha); i++ {
		if !math.IsNaN(ha[i].Open) {
			t.Errorf("bar %d: expected NaN open after malformed bar, got %.4f", i, ha[i].Open)
		}
	}
	// Bars before the bad row are unaffected.
	if math.IsNaN(ha[0].Open) || math.IsNaN(ha[0].Close) {
		t.Error("bar 0 should be unaffected by a later NaN")
	}
}
