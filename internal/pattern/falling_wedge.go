package pattern

import (
	"fmt"
	"log"

	"PatternScout/internal/calculator"
	"PatternScout/internal/fibonacci"
	"PatternScout/internal/model"
)

// FallingWedge detects a descending resistance trendline between a peak and a
// later trough, confirmed by a breakout above the pattern's starting high.
type FallingWedge struct {
	Window         int
	AngleThreshold float64 // maximum negative slope per bar, in price units
}

// NewFallingWedge returns a detector with default thresholds.
func NewFallingWedge() *FallingWedge {
	return &FallingWedge{Window: 20, AngleThreshold: -0.03}
}

func (d *FallingWedge) Type() model.PatternType    { return model.PatternFallingWedge }
func (d *FallingWedge) Direction() model.Direction { return model.Bullish }

func (d *FallingWedge) Detect(series *model.PriceSeries) (*model.PatternMatch, error) {
	minBars := d.Window + 2
	if len(series.Bars) < minBars {
		return nil, errTooShort(d.Type(), minBars, len(series.Bars))
	}
	highs := series.Highs()
	lows := series.Lows()

	peaks := calculator.RollingMaxIndices(highs, d.Window)
	troughs := calculator.RollingMinIndices(lows, d.Window)

	// Walk every candidate trendline; the first one with a confirmed
	// breakout wins even when an earlier anchor is never cleared.
	for _, tl := range findTrendlines(peaks, troughs, highs, d.AngleThreshold, false) {
		// Breakout: price rises above the high at the pattern start.
		breakout := calculator.MaxIndex(highs, tl.trough, len(highs))
		if highs[breakout] <= highs[tl.peak] {
			continue
		}

		// Retracements span the wedge range; only the 1.618 extension is
		// used as a projected target.
		targets, err := fibonacci.Retracements(lows[tl.trough], highs[tl.peak])
		if err != nil {
			log.Printf("[WARN] falling wedge fibonacci targets: %v", err)
			targets = map[string]float64{}
		}
		if ext, err := fibonacci.Extensions(lows[tl.trough], highs[tl.peak], highs[breakout]); err == nil {
			targets["Fib 1.618 ext"] = ext["Fib 1.618 ext"]
		}

		return &model.PatternMatch{
			Type:      d.Type(),
			Direction: d.Direction(),
			Points: []model.PatternPoint{
				{Label: "trendline_start", BarIndex: tl.peak, Price: highs[tl.peak]},
				{Label: "trendline_end", BarIndex: tl.trough, Price: highs[tl.trough]},
				{Label: "breakout", BarIndex: breakout, Price: highs[breakout]},
			},
			Targets:   targets,
			Confirmed: true,
			Summary: fmt.Sprintf("falling wedge from bar %d to %d, breakout at %.2f",
				tl.peak, tl.trough, highs[breakout]),
		}, nil
	}
	return nil, nil
}
