package collector

import "CandleScout/internal/model"

// Fetcher defines the interface for fetching daily quote history.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	Name() string
}
