package pattern

import (
	"fmt"

	"PatternScout/internal/calculator"
	"PatternScout/internal/model"
)

// CupAndHandle detects a rounded bottom (the cup) between two rims at
// similar levels, followed by a shallow pullback (the handle) and a close
// above the right rim.
type CupAndHandle struct {
	CupMinPeriods    int
	HandleMinPeriods int
	HandleMaxPeriods int
	CupDepthMin      float64 // cup depth as a fraction of the left rim
	HandleDepthMin   float64 // minimum handle depth as a fraction of the right rim
	HandleMaxOfCup   float64 // handle depth ceiling as a fraction of cup depth
	RimTolerance     float64 // allowed rim level mismatch
}

// NewCupAndHandle returns a detector with default thresholds.
func NewCupAndHandle() *CupAndHandle {
	return &CupAndHandle{
		CupMinPeriods:    30,
		HandleMinPeriods: 5,
		HandleMaxPeriods: 15,
		CupDepthMin:      0.15,
		HandleDepthMin:   0.03,
		HandleMaxOfCup:   0.5,
		RimTolerance:     0.05,
	}
}

func (d *CupAndHandle) Type() model.PatternType    { return model.PatternCupAndHandle }
func (d *CupAndHandle) Direction() model.Direction { return model.Bullish }

func (d *CupAndHandle) Detect(series *model.PriceSeries) (*model.PatternMatch, error) {
	const minBars = 60
	if len(series.Bars) < minBars {
		return nil, errTooShort(d.Type(), minBars, len(series.Bars))
	}
	highs := series.Highs()
	lows := series.Lows()
	closes := series.Closes()
	n := len(series.Bars)

	for i := d.CupMinPeriods; i < n-d.HandleMaxPeriods; i++ {
		// Left rim: the highest high in a band around the cup start.
		bandLo := i - d.CupMinPeriods - 10
		if bandLo < 0 {
			bandLo = 0
		}
		bandHi := i - d.CupMinPeriods + 10
		if bandHi > n {
			bandHi = n
		}
		if bandLo >= bandHi {
			continue
		}
		leftRim := calculator.MaxIndex(highs, bandLo, bandHi)
		leftRimPrice := highs[leftRim]

		// Cup bottom: the lowest low between the left rim and the candidate
		// right rim.
		cupBottom := calculator.MinIndex(lows, leftRim, i+1)
		cupDepth := leftRimPrice - lows[cupBottom]
		if cupDepth/leftRimPrice < d.CupDepthMin {
			continue
		}

		rightRimPrice := highs[i]
		if diff := rightRimPrice - leftRimPrice; diff > leftRimPrice*d.RimTolerance || -diff > leftRimPrice*d.RimTolerance {
			continue
		}

		// Handle: a shallow dip after the right rim.
		handleEnd := i + d.HandleMaxPeriods
		if handleEnd > n {
			handleEnd = n
		}
		if handleEnd-i < d.HandleMinPeriods {
			continue
		}
		handleBottom := calculator.MinIndex(lows, i, handleEnd)
		handleDepth := rightRimPrice - lows[handleBottom]
		if handleDepth/rightRimPrice < d.HandleDepthMin || handleDepth/cupDepth > d.HandleMaxOfCup {
			continue
		}
		// Handle must hold the upper half of the cup.
		if lows[handleBottom] < lows[cupBottom]+cupDepth*0.5 {
			continue
		}

		// Breakout: first close above the right rim after the handle bottom.
		breakout := -1
		for k := handleBottom + 1; k < n; k++ {
			if closes[k] > rightRimPrice {
				breakout = k
				break
			}
		}
		if breakout < 0 {
			continue
		}

		target := closes[breakout] + cupDepth
		confirmed := closes[n-1] >= closes[breakout]
		status := "breakout confirmed"
		if !confirmed {
			status = "awaiting breakout confirmation"
		}

		return &model.PatternMatch{
			Type:      d.Type(),
			Direction: d.Direction(),
			Points: []model.PatternPoint{
				{Label: "left_rim", BarIndex: leftRim, Price: leftRimPrice},
				{Label: "cup_bottom", BarIndex: cupBottom, Price: lows[cupBottom]},
				{Label: "right_rim", BarIndex: i, Price: rightRimPrice},
				{Label: "handle_bottom", BarIndex: handleBottom, Price: lows[handleBottom]},
				{Label: "breakout", BarIndex: breakout, Price: closes[breakout]},
			},
			Targets:   map[string]float64{"Measured move": target},
			Confirmed: confirmed,
			Summary: fmt.Sprintf("cup and handle, depth %.2f, target %.2f, %s",
				cupDepth, target, status),
		}, nil
	}
	return nil, nil
}
