package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds one fetched history for a symbol at a fixed interval.
type PriceSeries struct {
	Symbol    string
	Interval  string // "1d", "1wk", "1h", ...
	Bars      []OHLCV
	FetchedAt time.Time
}

// Closes returns the close prices of the series in chronological order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Highs returns the high prices of the series in chronological order.
func (s *PriceSeries) Highs() []float64 {
	highs := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		highs[i] = b.High
	}
	return highs
}

// Lows returns the low prices of the series in chronological order.
func (s *PriceSeries) Lows() []float64 {
	lows := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		lows[i] = b.Low
	}
	return lows
}

// LastClose returns the most recent close, or 0 for an empty series.
func (s *PriceSeries) LastClose() float64 {
	if len(s.Bars) == 0 {
		return 0
	}
	return s.Bars[len(s.Bars)-1].Close
}
