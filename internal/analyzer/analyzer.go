// Package analyzer turns computed indicators into qualitative signals.
package analyzer

import (
	"fmt"
	"log"

	"PatternScout/internal/calculator"
	"PatternScout/internal/model"
)

const (
	rsiOverbought  = 70.0
	rsiOversold    = 30.0
	indicatorVotes = 3
)

// Indicators computes the indicator set for a series. Individual indicator
// failures degrade to zero values rather than aborting.
func Indicators(series *model.PriceSeries) model.IndicatorSet {
	closes := series.Closes()
	ind := model.IndicatorSet{Close: series.LastClose()}

	if v, err := calculator.CalculateSMA(closes, 20); err != nil {
		log.Printf("[WARN] SMA20 calculation failed: %v", err)
	} else {
		ind.SMA20 = v
	}
	if v, err := calculator.CalculateSMA(closes, 50); err != nil {
		log.Printf("[WARN] SMA50 calculation failed: %v", err)
	} else {
		ind.SMA50 = v
	}
	if v, err := calculator.CalculateSMA(closes, 200); err != nil {
		log.Printf("[WARN] SMA200 calculation failed: %v", err)
	} else {
		ind.SMA200 = v
	}
	if v, err := calculator.CalculateRSI(closes, 14); err != nil {
		log.Printf("[WARN] RSI calculation failed: %v, defaulting to 50", err)
		ind.RSI14 = 50
	} else {
		ind.RSI14 = v
	}
	if macd, err := calculator.CalculateMACD(closes, 12, 26, 9); err != nil {
		log.Printf("[WARN] MACD calculation failed: %v", err)
	} else {
		ind.MACD, ind.MACDSignal, ind.MACDHist = macd.Latest()
	}
	return ind
}

// Evaluate runs the three-indicator vote over a series and returns the
// verdict. Needs at least 50 bars for a reliable reading.
func Evaluate(series *model.PriceSeries) model.Verdict {
	if len(series.Bars) < 50 {
		return model.Verdict{
			Signal:      model.SignalInsufficient,
			Explanation: "not enough historical data to perform reliable analysis",
		}
	}
	return Vote(Indicators(series))
}

// Vote applies the voting rules to an already-computed indicator set.
func Vote(ind model.IndicatorSet) model.Verdict {
	buy, sell := 0, 0

	smaTrend := "Neutral"
	switch {
	case ind.SMA20 == 0 || ind.SMA50 == 0:
		smaTrend = "Unknown"
	case ind.Close > ind.SMA20 && ind.SMA20 > ind.SMA50:
		buy++
		smaTrend = "Bullish"
	case ind.Close < ind.SMA20 && ind.SMA20 < ind.SMA50:
		sell++
		smaTrend = "Bearish"
	}

	rsiLevel := "Neutral"
	switch {
	case ind.RSI14 > rsiOverbought:
		sell++
		rsiLevel = "Overbought"
	case ind.RSI14 < rsiOversold:
		buy++
		rsiLevel = "Oversold"
	}

	macdStatus := "Neutral"
	switch {
	case ind.MACD > ind.MACDSignal:
		buy++
		macdStatus = "Above Signal"
	case ind.MACD < ind.MACDSignal:
		sell++
		macdStatus = "Below Signal"
	}

	signal := model.SignalHold
	if buy > sell {
		signal = model.SignalBuy
	} else if sell > buy {
		signal = model.SignalSell
	}

	margin := buy - sell
	if margin < 0 {
		margin = -margin
	}
	confidence := float64(margin) / indicatorVotes * 100

	return model.Verdict{
		Signal:     signal,
		Confidence: confidence,
		SMATrend:   smaTrend,
		RSILevel:   rsiLevel,
		MACDStatus: macdStatus,
		Explanation: fmt.Sprintf(
			"SMA Trend: %s, RSI Level: %s, MACD Status: %s. Overall signal is %s with %.2f%% confidence.",
			smaTrend, rsiLevel, macdStatus, signal, confidence),
	}
}
