package strategy

import (
	"math"
	"testing"

	"CandleScout/internal/model"
)

func bar(open, close float64) model.OHLCV {
	return model.OHLCV{Open: open, Close: close}
}

func TestMatchReversal(t *testing.T) {
	tests := []struct {
		name string
		bars []model.OHLCV
		want bool
	}{
		{
			name: "three reds then green closing higher",
			bars: []model.OHLCV{bar(10, 9), bar(9, 8), bar(8, 7), bar(7, 8)},
			want: true,
		},
		{
			name: "flat last bar is not green",
			bars: []model.OHLCV{bar(10, 9), bar(9, 8), bar(8, 7), bar(7, 7)},
			want: false,
		},
		{
			name: "only two of three reds",
			bars: []model.OHLCV{bar(9, 10), bar(9, 8), bar(8, 7), bar(7, 8)},
			want: false,
		},
		{
			name: "green but does not exceed prior close",
			bars: []model.OHLCV{bar(10, 9), bar(9, 8), bar(8, 7), bar(5, 6)},
			want: false,
		},
		{
			name: "green equal to prior close fails strictly",
			bars: []model.OHLCV{bar(10, 9), bar(9, 8), bar(8, 7), bar(6, 7)},
			want: false,
		},
		{
			name: "flat bar inside red window",
			bars: []model.OHLCV{bar(10, 9), bar(9, 9), bar(9, 7), bar(7, 8)},
			want: false,
		},
		{
			name: "empty series",
			bars: nil,
			want: false,
		},
		{
			name: "three bars is insufficient history",
			bars: []model.OHLCV{bar(10, 9), bar(9, 8), bar(8, 9)},
			want: false,
		},
		{
			name: "only the trailing window matters",
			bars: []model.OHLCV{bar(1, 2), bar(2, 3), bar(10, 9), bar(9, 8), bar(8, 7), bar(7, 8)},
			want: true,
		},
		{
			name: "NaN inside the window yields no signal",
			bars: []model.OHLCV{bar(10, 9), bar(9, math.NaN()), bar(8, 7), bar(7, 8)},
			want: false,
		},
		{
			name: "NaN green bar yields no signal",
			bars: []model.OHLCV{bar(10, 9), bar(9, 8), bar(8, 7), bar(math.NaN(), math.NaN())},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchReversal(tt.bars); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
