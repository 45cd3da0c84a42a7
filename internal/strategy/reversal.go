package strategy

import "CandleScout/internal/model"

// patternWindow is the fixed lookback of the rule: three falling bars, then
// one rising bar.
const patternWindow = 4

// MatchReversal reports whether the most recent four smoothed bars form
// three red bars (close < open) followed by a green bar (close > open)
// that also closes above the last red bar's close. Fewer than four bars
// means no signal, not an error.
//
// Comparisons are strict: a flat bar (close == open) counts as neither red
// nor green, and a NaN anywhere in the window fails every comparison, so
// malformed data degrades to "no signal".
func MatchReversal(ha []model.OHLCV) bool {
	if len(ha) < patternWindow {
		return false
	}
	w := ha[len(ha)-patternWindow:]
	for _, b := range w[:patternWindow-1] {
		if !(b.Close < b.Open) {
			return false
		}
	}
	green := w[patternWindow-1]
	return green.Close > green.Open && green.Close > w[patternWindow-2].Close
}
