package calculator

import "errors"

// MACDResult holds the MACD line, signal line, and histogram series.
type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// CalculateMACD computes the MACD series from close prices.
// Standard periods are fast=12, slow=26, signal=9.
func CalculateMACD(prices []float64, fastPeriod, slowPeriod, signalPeriod int) (*MACDResult, error) {
	if fastPeriod <= 0 || signalPeriod <= 0 || slowPeriod <= fastPeriod {
		return nil, errors.New("invalid MACD periods")
	}
	minLength := slowPeriod + signalPeriod - 1
	if len(prices) < minLength {
		return nil, errors.New("not enough data for MACD calculation")
	}

	fastEMA := EMASeries(prices, fastPeriod)
	slowEMA := EMASeries(prices, slowPeriod)

	macdLine := make([]float64, len(prices))
	for i := slowPeriod - 1; i < len(prices); i++ {
		macdLine[i] = fastEMA[i] - slowEMA[i]
	}

	// Seed the signal EMA from the first defined MACD value, not from the
	// zero-filled warm-up region.
	signalLine := make([]float64, len(prices))
	copy(signalLine[slowPeriod-1:], EMASeries(macdLine[slowPeriod-1:], signalPeriod))

	histogram := make([]float64, len(prices))
	for i := slowPeriod + signalPeriod - 2; i < len(prices); i++ {
		histogram[i] = macdLine[i] - signalLine[i]
	}

	return &MACDResult{MACD: macdLine, Signal: signalLine, Histogram: histogram}, nil
}

// Latest returns the last MACD, signal, and histogram values.
func (r *MACDResult) Latest() (macd, signal, hist float64) {
	n := len(r.MACD)
	if n == 0 {
		return 0, 0, 0
	}
	return r.MACD[n-1], r.Signal[n-1], r.Histogram[n-1]
}
