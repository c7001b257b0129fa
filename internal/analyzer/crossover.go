package analyzer

import (
	"errors"

	"PatternScout/internal/calculator"
	"PatternScout/internal/model"
)

// Crossover runs the long-horizon moving-average strategy: SMA50 above
// SMA200 leans Buy, below leans Sell, and an RSI divergence on the latest
// bar upgrades the lean to a strong (final) decision.
//
// A bullish divergence is an oversold RSI while the close is still rising; a
// bearish divergence is an overbought RSI while the close is falling.
func Crossover(series *model.PriceSeries) (*model.CrossoverDecision, error) {
	closes := series.Closes()
	if len(closes) < 201 {
		return nil, errors.New("need at least 201 bars for the MA crossover strategy")
	}

	sma50, err := calculator.CalculateSMA(closes, 50)
	if err != nil {
		return nil, err
	}
	sma200, err := calculator.CalculateSMA(closes, 200)
	if err != nil {
		return nil, err
	}
	rsi, err := calculator.CalculateRSI(closes, 14)
	if err != nil {
		return nil, err
	}

	last := closes[len(closes)-1]
	prev := closes[len(closes)-2]

	alignment := "Death"
	if sma50 > sma200 {
		alignment = "Golden"
	}

	divergence := "None"
	if rsi < rsiOversold && last > prev {
		divergence = "Bullish"
	} else if rsi > rsiOverbought && last < prev {
		divergence = "Bearish"
	}

	dec := &model.CrossoverDecision{Alignment: alignment, Divergence: divergence}
	switch {
	case alignment == "Golden" && divergence == "Bullish":
		dec.Decision = model.SignalBuy
		dec.Strong = true
	case alignment == "Death" && divergence == "Bearish":
		dec.Decision = model.SignalSell
		dec.Strong = true
	default:
		dec.Decision = model.SignalHold
	}
	return dec, nil
}
