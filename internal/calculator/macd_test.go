package calculator

import "testing"

func TestCalculateMACD(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100 + float64(i)*0.5
	}
	res, err := CalculateMACD(prices, 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.MACD) != len(prices) || len(res.Signal) != len(prices) || len(res.Histogram) != len(prices) {
		t.Fatalf("series lengths should match input, got %d/%d/%d", len(res.MACD), len(res.Signal), len(res.Histogram))
	}

	// A steady uptrend keeps the fast EMA above the slow one.
	macd, _, _ := res.Latest()
	if macd <= 0 {
		t.Errorf("uptrend should give positive MACD, got %f", macd)
	}
}

func TestCalculateMACD_Downtrend(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 200 - float64(i)
	}
	res, err := CalculateMACD(prices, 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	macd, signal, hist := res.Latest()
	if macd >= 0 {
		t.Errorf("downtrend should give negative MACD, got %f", macd)
	}
	if !almostEqual(hist, macd-signal) {
		t.Errorf("histogram %f should equal MACD-signal %f", hist, macd-signal)
	}
}

func TestCalculateMACD_SignalSeedSkipsWarmup(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100 + float64(i)*0.5
	}
	res, err := CalculateMACD(prices, 12, 26, 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// First defined signal value is the SMA of the first nine defined MACD
	// values; the zero-filled warm-up must not leak into the seed.
	seedIdx := 26 + 9 - 2
	want := 0.0
	for i := 26 - 1; i <= seedIdx; i++ {
		want += res.MACD[i]
	}
	want /= 9
	if !almostEqual(res.Signal[seedIdx], want) {
		t.Errorf("signal seed should be %f, got %f", want, res.Signal[seedIdx])
	}
	if res.Signal[seedIdx-1] != 0 {
		t.Errorf("signal before the seed should stay zero, got %f", res.Signal[seedIdx-1])
	}
}

func TestCalculateMACD_Errors(t *testing.T) {
	short := make([]float64, 20)
	if _, err := CalculateMACD(short, 12, 26, 9); err == nil {
		t.Error("expected error for insufficient data")
	}
	long := make([]float64, 60)
	if _, err := CalculateMACD(long, 26, 12, 9); err == nil {
		t.Error("expected error when slow period <= fast period")
	}
}
