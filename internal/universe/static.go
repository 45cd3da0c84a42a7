package universe

import "context"

// sampleTickers is the minimal built-in universe used when every online
// source fails: large-cap TSX names that always have quote history.
var sampleTickers = []string{
	"RY.TO", "TD.TO", "BNS.TO", "ENB.TO", "CNQ.TO", "SU.TO", "SHOP.TO", "BCE.TO",
}

// StaticProvider serves a fixed symbol list.
type StaticProvider struct {
	Symbols []string
}

// NewSampleProvider returns a provider over the built-in sample universe.
func NewSampleProvider() *StaticProvider {
	return &StaticProvider{Symbols: sampleTickers}
}

func (p *StaticProvider) Name() string { return "static" }

func (p *StaticProvider) Fetch(_ context.Context) ([]string, error) {
	if len(p.Symbols) == 0 {
		return nil, ErrEmptyUniverse
	}
	out := make([]string, len(p.Symbols))
	copy(out, p.Symbols)
	return out, nil
}
