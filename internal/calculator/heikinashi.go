package calculator

import (
	"math"

	"CandleScout/internal/model"
)

// HeikinAshi converts raw bars into the smoothed Heikin-Ashi series.
// Input must be in chronological order; output has the same length and order.
//
//	haClose = (open + high + low + close) / 4
//	haOpen  = (prevHaOpen + prevHaClose) / 2, seeded with (open[0] + close[0]) / 2
//	haHigh  = max(high, haOpen, haClose)
//	haLow   = min(low, haOpen, haClose)
//
// Each open depends on the previous smoothed bar, so the series is computed
// strictly left to right. A NaN in any raw field enters the open recurrence
// and stays there for the rest of the series; filtering bad rows is the
// caller's job, not this function's.
func HeikinAshi(bars []model.OHLCV) []model.OHLCV {
	if len(bars) == 0 {
		return nil
	}
	ha := make([]model.OHLCV, len(bars))
	for i, b := range bars {
		h := b // keep Time and Volume
		h.Close = (b.Open + b.High + b.Low + b.Close) / 4
		if i == 0 {
			h.Open = (b.Open + b.Close) / 2
		} else {
			h.Open = (ha[i-1].Open + ha[i-1].Close) / 2
		}
		h.High = math.Max(b.High, math.Max(h.Open, h.Close))
		h.Low = math.Min(b.Low, math.Min(h.Open, h.Close))
		ha[i] = h
	}
	return ha
}
