package model

import "time"

// IndicatorSet holds the latest computed indicator values for a series.
type IndicatorSet struct {
	Close      float64 `json:"close"`
	SMA20      float64 `json:"sma20"`
	SMA50      float64 `json:"sma50"`
	SMA200     float64 `json:"sma200"`
	RSI14      float64 `json:"rsi14"`
	MACD       float64 `json:"macd"`
	MACDSignal float64 `json:"macd_signal"`
	MACDHist   float64 `json:"macd_hist"`
}

// Signal is the overall verdict of the indicator vote.
type Signal string

const (
	SignalBuy          Signal = "BUY"
	SignalSell         Signal = "SELL"
	SignalHold         Signal = "HOLD"
	SignalInsufficient Signal = "INSUFFICIENT_DATA"
)

// Verdict is the outcome of the three-indicator vote.
type Verdict struct {
	Signal      Signal  `json:"signal"`
	Confidence  float64 `json:"confidence"` // 0-100, from vote margin
	SMATrend    string  `json:"sma_trend"`  // "Bullish", "Bearish", "Neutral"
	RSILevel    string  `json:"rsi_level"`  // "Overbought", "Oversold", "Neutral"
	MACDStatus  string  `json:"macd_status"`
	Explanation string  `json:"explanation"`
}

// CrossoverDecision is the outcome of the long-horizon MA crossover strategy.
type CrossoverDecision struct {
	Decision   Signal `json:"decision"`   // BUY / SELL / HOLD
	Alignment  string `json:"alignment"`  // "Golden" (SMA50 > SMA200) or "Death"
	Divergence string `json:"divergence"` // "Bullish", "Bearish" or "None"
	Strong     bool   `json:"strong"`     // divergence confirmed the alignment
}

// ScanReport is the full output of one symbol scan.
type ScanReport struct {
	ID         string             `json:"id"`
	Symbol     string             `json:"symbol"`
	Interval   string             `json:"interval"`
	BarCount   int                `json:"bar_count"`
	From       time.Time          `json:"from"`
	To         time.Time          `json:"to"`
	Indicators IndicatorSet       `json:"indicators"`
	Verdict    Verdict            `json:"verdict"`
	Crossover  *CrossoverDecision `json:"crossover,omitempty"`
	Matches    []PatternMatch     `json:"matches"`
	Warnings   []string           `json:"warnings,omitempty"`
	ChartPath  string             `json:"chart_path,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

// Bias summarizes the pattern consensus: positive means more bullish
// patterns than bearish ones.
func (r *ScanReport) Bias() int {
	bias := 0
	for _, m := range r.Matches {
		if m.Direction == Bullish {
			bias++
		} else {
			bias--
		}
	}
	return bias
}
