package collector

import "PatternScout/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchBars returns up to lookback bars at the given interval
	// ("1d", "1wk", "1h"), oldest first.
	FetchBars(symbol, interval string, lookback int) ([]model.OHLCV, error)
	FetchCurrentPrice(symbol string) (float64, error)
	Name() string
}
