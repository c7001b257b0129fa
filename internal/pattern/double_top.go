package pattern

import (
	"fmt"
	"math"

	"PatternScout/internal/calculator"
	"PatternScout/internal/model"
)

// DoubleTop detects two highs within a price threshold of each other with a
// confirmed breakdown below the support between them.
type DoubleTop struct {
	Window    int     // centered rolling window for peak candidates
	Threshold float64 // allowed fractional difference between the two tops
}

// NewDoubleTop returns a detector with default thresholds.
func NewDoubleTop() *DoubleTop {
	return &DoubleTop{Window: 20, Threshold: 0.05}
}

func (d *DoubleTop) Type() model.PatternType    { return model.PatternDoubleTop }
func (d *DoubleTop) Direction() model.Direction { return model.Bearish }

func (d *DoubleTop) Detect(series *model.PriceSeries) (*model.PatternMatch, error) {
	minBars := d.Window + 2
	if len(series.Bars) < minBars {
		return nil, errTooShort(d.Type(), minBars, len(series.Bars))
	}
	highs := series.Highs()
	lows := series.Lows()

	pivots := calculator.RollingMaxIndices(highs, d.Window)

	for i := 0; i < len(pivots)-1; i++ {
		for j := i + 1; j < len(pivots); j++ {
			first, second := pivots[i], pivots[j]
			if math.Abs(highs[first]-highs[second]) >= highs[first]*d.Threshold {
				continue
			}

			// Support is the lowest point between the two tops.
			_, support, err := calculator.RangeHighLow(highs, lows, first, second+1)
			if err != nil {
				continue
			}

			for k := second + 1; k < len(lows); k++ {
				if lows[k] < support {
					return &model.PatternMatch{
						Type:      d.Type(),
						Direction: d.Direction(),
						Points: []model.PatternPoint{
							{Label: "first_top", BarIndex: first, Price: highs[first]},
							{Label: "second_top", BarIndex: second, Price: highs[second]},
							{Label: "support", BarIndex: second, Price: support},
							{Label: "breakdown", BarIndex: k, Price: lows[k]},
						},
						Confirmed: true,
						Summary: fmt.Sprintf("double top at %.2f/%.2f, breakdown below %.2f",
							highs[first], highs[second], support),
					}, nil
				}
			}
		}
	}
	return nil, nil
}
