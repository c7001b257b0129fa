package analyzer

import (
	"testing"
	"time"

	"PatternScout/internal/model"
)

func seriesFromCloses(closes []float64) *model.PriceSeries {
	bars := make([]model.OHLCV, len(closes))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return &model.PriceSeries{Symbol: "TEST", Interval: "1d", Bars: bars, FetchedAt: time.Now()}
}

func TestVote_AllBullish(t *testing.T) {
	v := Vote(model.IndicatorSet{
		Close: 110, SMA20: 105, SMA50: 100,
		RSI14: 25,
		MACD:  1.2, MACDSignal: 0.8,
	})
	if v.Signal != model.SignalBuy {
		t.Errorf("expected BUY, got %s", v.Signal)
	}
	if v.Confidence != 100 {
		t.Errorf("expected confidence 100, got %f", v.Confidence)
	}
	if v.SMATrend != "Bullish" || v.RSILevel != "Oversold" || v.MACDStatus != "Above Signal" {
		t.Errorf("unexpected components: %s / %s / %s", v.SMATrend, v.RSILevel, v.MACDStatus)
	}
}

func TestVote_AllBearish(t *testing.T) {
	v := Vote(model.IndicatorSet{
		Close: 90, SMA20: 95, SMA50: 100,
		RSI14: 78,
		MACD:  -1.0, MACDSignal: -0.5,
	})
	if v.Signal != model.SignalSell {
		t.Errorf("expected SELL, got %s", v.Signal)
	}
	if v.Confidence != 100 {
		t.Errorf("expected confidence 100, got %f", v.Confidence)
	}
}

func TestVote_Split(t *testing.T) {
	// Bullish SMA stack, overbought RSI, bearish MACD: one vote each way
	v := Vote(model.IndicatorSet{
		Close: 110, SMA20: 105, SMA50: 100,
		RSI14: 75,
		MACD:  -0.2, MACDSignal: 0.1,
	})
	if v.Signal != model.SignalHold {
		t.Errorf("expected HOLD for a split vote, got %s", v.Signal)
	}
	if v.Confidence != 0 {
		t.Errorf("expected confidence 0, got %f", v.Confidence)
	}
}

func TestVote_UnknownSMA(t *testing.T) {
	v := Vote(model.IndicatorSet{
		Close: 110, SMA20: 105, SMA50: 0,
		RSI14: 50,
		MACD:  0.5, MACDSignal: 0.2,
	})
	if v.SMATrend != "Unknown" {
		t.Errorf("expected Unknown SMA trend when SMA50 is missing, got %s", v.SMATrend)
	}
	if v.Signal != model.SignalBuy {
		t.Errorf("MACD alone should carry the vote to BUY, got %s", v.Signal)
	}
}

func TestEvaluate_InsufficientData(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}
	v := Evaluate(seriesFromCloses(closes))
	if v.Signal != model.SignalInsufficient {
		t.Errorf("expected INSUFFICIENT_DATA for 30 bars, got %s", v.Signal)
	}
}

func TestEvaluate_Uptrend(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)*0.5
	}
	v := Evaluate(seriesFromCloses(closes))
	if v.SMATrend != "Bullish" {
		t.Errorf("expected Bullish SMA trend for an uptrend, got %s", v.SMATrend)
	}
	if v.Signal == model.SignalSell {
		t.Errorf("uptrend should not vote SELL, got %s", v.Signal)
	}
	if v.Explanation == "" {
		t.Error("expected a populated explanation")
	}
}

func TestIndicators_ShortSeries(t *testing.T) {
	// 25 bars: SMA20 works, SMA50/SMA200/MACD degrade to zero, RSI works.
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100 + float64(i%3)
	}
	ind := Indicators(seriesFromCloses(closes))
	if ind.SMA20 == 0 {
		t.Error("SMA20 should compute on 25 bars")
	}
	if ind.SMA50 != 0 || ind.SMA200 != 0 {
		t.Errorf("long SMAs should degrade to zero, got %f / %f", ind.SMA50, ind.SMA200)
	}
	if ind.MACD != 0 || ind.MACDSignal != 0 {
		t.Error("MACD should degrade to zero on 25 bars")
	}
}

func TestCrossover_TooShort(t *testing.T) {
	closes := make([]float64, 100)
	if _, err := Crossover(seriesFromCloses(closes)); err == nil {
		t.Error("expected error below 201 bars")
	}
}

func TestCrossover_StrongBuy(t *testing.T) {
	// Long uptrend keeps SMA50 above SMA200, then a sharp pullback drives
	// RSI oversold, and the final bar ticks up.
	closes := make([]float64, 250)
	for i := 0; i < 230; i++ {
		closes[i] = 100 + float64(i)
	}
	for i := 230; i < 249; i++ {
		closes[i] = closes[i-1] - 5
	}
	closes[249] = closes[248] + 1

	dec, err := Crossover(seriesFromCloses(closes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Alignment != "Golden" {
		t.Errorf("expected Golden alignment, got %s", dec.Alignment)
	}
	if dec.Divergence != "Bullish" {
		t.Errorf("expected Bullish divergence, got %s", dec.Divergence)
	}
	if dec.Decision != model.SignalBuy || !dec.Strong {
		t.Errorf("expected strong BUY, got %s (strong=%v)", dec.Decision, dec.Strong)
	}
}

func TestCrossover_StrongSell(t *testing.T) {
	closes := make([]float64, 250)
	for i := 0; i < 230; i++ {
		closes[i] = 400 - float64(i)
	}
	for i := 230; i < 249; i++ {
		closes[i] = closes[i-1] + 5
	}
	closes[249] = closes[248] - 1

	dec, err := Crossover(seriesFromCloses(closes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Alignment != "Death" {
		t.Errorf("expected Death alignment, got %s", dec.Alignment)
	}
	if dec.Decision != model.SignalSell || !dec.Strong {
		t.Errorf("expected strong SELL, got %s (strong=%v)", dec.Decision, dec.Strong)
	}
}

func TestCrossover_HoldWithoutDivergence(t *testing.T) {
	closes := make([]float64, 250)
	for i := range closes {
		closes[i] = 100 + float64(i%5)
	}
	dec, err := Crossover(seriesFromCloses(closes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.Divergence != "None" {
		t.Errorf("expected no divergence, got %s", dec.Divergence)
	}
	if dec.Decision != model.SignalHold || dec.Strong {
		t.Errorf("expected weak HOLD, got %s (strong=%v)", dec.Decision, dec.Strong)
	}
}
