package calculator

import "testing"

func TestCalculateRSI_AllGains(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	rsi, err := CalculateRSI(prices, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 100.0 {
		t.Errorf("monotonic rise should give RSI 100, got %f", rsi)
	}
}

func TestCalculateRSI_AllLosses(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100 - float64(i)
	}
	rsi, err := CalculateRSI(prices, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi > 1.0 {
		t.Errorf("monotonic fall should give RSI near 0, got %f", rsi)
	}
}

func TestCalculateRSI_InsufficientData(t *testing.T) {
	rsi, err := CalculateRSI([]float64{100, 101, 102}, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 50.0 {
		t.Errorf("expected neutral 50 for short series, got %f", rsi)
	}
}

func TestCalculateRSI_Alternating(t *testing.T) {
	// Equal-sized gains and losses should land near 50.
	prices := make([]float64, 30)
	for i := range prices {
		if i%2 == 0 {
			prices[i] = 100
		} else {
			prices[i] = 101
		}
	}
	rsi, err := CalculateRSI(prices, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi < 40 || rsi > 60 {
		t.Errorf("alternating series should hover around 50, got %f", rsi)
	}
}

func TestRSISeries(t *testing.T) {
	prices := make([]float64, 40)
	for i := range prices {
		prices[i] = 100 + float64(i%7)
	}
	series := RSISeries(prices, 14)
	if len(series) != len(prices) {
		t.Fatalf("expected %d values, got %d", len(prices), len(series))
	}
	for i := 0; i < 14; i++ {
		if series[i] != 50.0 {
			t.Errorf("warmup index %d should be neutral 50, got %f", i, series[i])
		}
	}

	latest, err := CalculateRSI(prices, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(series[len(series)-1], latest) {
		t.Errorf("series tail %f should equal latest RSI %f", series[len(series)-1], latest)
	}
}
