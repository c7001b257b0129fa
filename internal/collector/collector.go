package collector

import (
	"fmt"
	"time"

	"PatternScout/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  []model.OHLCV
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ string, _ string, lookback int) ([]model.OHLCV, error) {
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateMockBars(m.Price, lookback), nil
}

func (m *MockFetcher) FetchCurrentPrice(_ string) (float64, error) {
	return m.Price, nil
}

// GenerateMockBars produces a gently trending synthetic series around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches price history and packages it as a PriceSeries.
type Collector struct {
	Fetcher  Fetcher
	Interval string
	Lookback int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, interval string, lookback int) *Collector {
	return &Collector{Fetcher: fetcher, Interval: interval, Lookback: lookback}
}

// Collect fetches the history for one symbol.
func (c *Collector) Collect(symbol string) (*model.PriceSeries, error) {
	bars, err := c.Fetcher.FetchBars(symbol, c.Interval, c.Lookback)
	if err != nil {
		return nil, fmt.Errorf("fetch bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no bars returned for %s", symbol)
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Interval:  c.Interval,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}
