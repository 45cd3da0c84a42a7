package universe

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "plain roots get the exchange suffix",
			in:   []string{"RY", "TD"},
			want: []string{"RY.TO", "TD.TO"},
		},
		{
			name: "unit suffixes are rewritten",
			in:   []string{"XRE.UN", "BAM.U"},
			want: []string{"BAM-U.TO", "XRE-UN.TO"},
		},
		{
			name: "existing suffix is kept",
			in:   []string{"SHOP.TO"},
			want: []string{"SHOP.TO"},
		},
		{
			name: "case and whitespace are cleaned",
			in:   []string{" ry ", "t d"},
			want: []string{"RY.TO", "TD.TO"},
		},
		{
			name: "placeholder and junk rows are dropped",
			in:   []string{"", "nan", "NONE", "WAY$TOOLONGSYMBOL", "A_B"},
			want: []string{},
		},
		{
			name: "deduplicated and sorted",
			in:   []string{"TD", "RY", "TD.TO", "ry"},
			want: []string{"RY.TO", "TD.TO"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSymbolColumnIndex(t *testing.T) {
	if got := symbolColumnIndex([]string{"Company", "Ticker symbol", "Sector"}); got != 1 {
		t.Errorf("expected column 1, got %d", got)
	}
	if got := symbolColumnIndex([]string{"Symbole"}); got != 0 {
		t.Errorf("expected column 0 for the French header, got %d", got)
	}
	if got := symbolColumnIndex([]string{"Company", "Sector"}); got != -1 {
		t.Errorf("expected -1 for missing column, got %d", got)
	}
}
