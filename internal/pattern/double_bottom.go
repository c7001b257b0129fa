package pattern

import (
	"fmt"
	"log"

	"PatternScout/internal/calculator"
	"PatternScout/internal/fibonacci"
	"PatternScout/internal/model"
)

// DoubleBottom detects two lows at approximately the same level with a
// confirmed breakout above the resistance between them.
type DoubleBottom struct {
	Window      int     // centered rolling window for trough candidates
	MinDistance int     // minimum pivot count between the two lows
	MinDepth    float64 // depth threshold as a fraction of the high
}

// NewDoubleBottom returns a detector with default thresholds.
func NewDoubleBottom() *DoubleBottom {
	return &DoubleBottom{Window: 5, MinDistance: 30, MinDepth: 0.1}
}

func (d *DoubleBottom) Type() model.PatternType    { return model.PatternDoubleBottom }
func (d *DoubleBottom) Direction() model.Direction { return model.Bullish }

func (d *DoubleBottom) Detect(series *model.PriceSeries) (*model.PatternMatch, error) {
	minBars := d.Window + 2
	if len(series.Bars) < minBars {
		return nil, errTooShort(d.Type(), minBars, len(series.Bars))
	}
	highs := series.Highs()
	lows := series.Lows()

	// Trough candidates with a significant bar range relative to the high.
	var pivots []int
	for _, idx := range calculator.RollingMinIndices(lows, d.Window) {
		if highs[idx]-lows[idx] > highs[idx]*d.MinDepth {
			pivots = append(pivots, idx)
		}
	}

	for i := 0; i < len(pivots); i++ {
		for j := i + d.MinDistance; j < len(pivots); j++ {
			first, second := pivots[i], pivots[j]
			if diff := lows[first] - lows[second]; diff > lows[first]*d.MinDepth || -diff > lows[first]*d.MinDepth {
				continue
			}

			// Resistance is the highest point between the two lows.
			resistance, _, err := calculator.RangeHighLow(highs, lows, first, second+1)
			if err != nil {
				continue
			}

			for k := second + 1; k < len(highs); k++ {
				if highs[k] > resistance {
					return d.buildMatch(series, first, second, k, resistance), nil
				}
			}
		}
	}
	return nil, nil
}

func (d *DoubleBottom) buildMatch(series *model.PriceSeries, first, second, breakout int, resistance float64) *model.PatternMatch {
	lows := series.Lows()
	highs := series.Highs()

	// Swing runs from the first low up to the second pivot's high.
	targets, err := fibonacci.AllLevels(lows[first], highs[second], highs[breakout])
	if err != nil {
		log.Printf("[WARN] double bottom fibonacci targets: %v", err)
		targets = nil
	}

	return &model.PatternMatch{
		Type:      d.Type(),
		Direction: d.Direction(),
		Points: []model.PatternPoint{
			{Label: "first_low", BarIndex: first, Price: lows[first]},
			{Label: "second_low", BarIndex: second, Price: lows[second]},
			{Label: "resistance", BarIndex: second, Price: resistance},
			{Label: "breakout", BarIndex: breakout, Price: highs[breakout]},
		},
		Targets:   targets,
		Confirmed: true,
		Summary: fmt.Sprintf("double bottom at %.2f/%.2f, breakout above %.2f",
			lows[first], lows[second], resistance),
	}
}
