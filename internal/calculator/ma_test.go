package calculator

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateSMA(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}

	sma, err := CalculateSMA(prices, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(sma, 3.0) {
		t.Errorf("expected 3.0, got %f", sma)
	}

	// Only the trailing window counts
	sma, err = CalculateSMA(prices, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(sma, 4.5) {
		t.Errorf("expected 4.5, got %f", sma)
	}
}

func TestCalculateSMA_Errors(t *testing.T) {
	if _, err := CalculateSMA([]float64{1, 2}, 3); err == nil {
		t.Error("expected error for insufficient data")
	}
	if _, err := CalculateSMA([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestSMASeries(t *testing.T) {
	prices := []float64{2, 4, 6, 8, 10}
	series := SMASeries(prices, 2)
	if len(series) != len(prices) {
		t.Fatalf("expected %d values, got %d", len(prices), len(series))
	}
	if series[0] != 0 {
		t.Errorf("warmup position should be zero, got %f", series[0])
	}
	want := []float64{0, 3, 5, 7, 9}
	for i, w := range want {
		if !almostEqual(series[i], w) {
			t.Errorf("index %d: expected %f, got %f", i, w, series[i])
		}
	}
}

func TestSMASeries_MatchesLatest(t *testing.T) {
	prices := []float64{5, 3, 8, 9, 4, 7, 6, 10, 2, 8}
	series := SMASeries(prices, 4)
	latest, err := CalculateSMA(prices, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(series[len(series)-1], latest) {
		t.Errorf("series tail %f should equal latest SMA %f", series[len(series)-1], latest)
	}
}

func TestEMASeries(t *testing.T) {
	prices := []float64{10, 10, 10, 10, 10}
	series := EMASeries(prices, 3)
	// A constant series has a constant EMA after the seed.
	for i := 2; i < len(series); i++ {
		if !almostEqual(series[i], 10) {
			t.Errorf("index %d: expected 10, got %f", i, series[i])
		}
	}

	if EMASeries([]float64{1, 2}, 3) != nil {
		t.Error("expected nil for insufficient data")
	}
}

func TestEMASeries_ReactsFasterThanSMA(t *testing.T) {
	prices := make([]float64, 30)
	for i := range prices {
		prices[i] = 100
	}
	// Step up at the end
	prices[28], prices[29] = 120, 120

	ema := EMASeries(prices, 10)
	sma := SMASeries(prices, 10)
	if ema[29] <= sma[29] {
		t.Errorf("EMA %f should sit above SMA %f after an upward step", ema[29], sma[29])
	}
}
