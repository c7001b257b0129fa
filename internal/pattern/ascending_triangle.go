package pattern

import (
	"fmt"
	"log"

	"PatternScout/internal/calculator"
	"PatternScout/internal/fibonacci"
	"PatternScout/internal/model"
)

// AscendingTriangle detects a flat resistance with repeated touches and a
// rising support line fitted through local minima, converging ahead of the
// pattern end. A close above resistance confirms; a close holding near
// resistance leaves the pattern forming.
type AscendingTriangle struct {
	MinTouches       int
	MinPatternLength int
	MaxPatternLength int
	HistogramBins    int
}

// NewAscendingTriangle returns a detector with default thresholds.
func NewAscendingTriangle() *AscendingTriangle {
	return &AscendingTriangle{
		MinTouches:       3,
		MinPatternLength: 15,
		MaxPatternLength: 60,
		HistogramBins:    20,
	}
}

func (d *AscendingTriangle) Type() model.PatternType    { return model.PatternAscendingTriangle }
func (d *AscendingTriangle) Direction() model.Direction { return model.Bullish }

func (d *AscendingTriangle) Detect(series *model.PriceSeries) (*model.PatternMatch, error) {
	const minBars = 30
	if len(series.Bars) < minBars {
		return nil, errTooShort(d.Type(), minBars, len(series.Bars))
	}
	highs := series.Highs()
	lows := series.Lows()
	closes := series.Closes()
	n := len(series.Bars)

	for start := 0; start < n-d.MinPatternLength; start++ {
		end := start + d.MaxPatternLength
		if end > n-1 {
			end = n - 1
		}
		if end-start < d.MinPatternLength {
			continue
		}

		touches := d.resistanceTouches(highs, start, end)
		if len(touches) < d.MinTouches {
			continue
		}
		resistance := 0.0
		for _, t := range touches {
			resistance += highs[t]
		}
		resistance /= float64(len(touches))

		minima := calculator.LocalMinimaIndices(lows, start+1, end)
		if len(minima) < 2 {
			continue
		}
		ys := make([]float64, len(minima))
		for i, m := range minima {
			ys[i] = lows[m]
		}
		slope, intercept, err := calculator.FitLine(minima, ys)
		if err != nil || slope <= 0 {
			continue
		}

		// Support and resistance must converge within a near-future window.
		convergence := int((resistance - intercept) / slope)
		if convergence < end || convergence > end+30 {
			continue
		}

		// Breakout: a close 1% above resistance shortly after the pattern.
		breakout := -1
		for k := end; k < n && k < end+20; k++ {
			if closes[k] > resistance*1.01 {
				breakout = k
				break
			}
		}
		if breakout < 0 && closes[end] < resistance*0.95 {
			continue // pattern has already failed
		}

		return d.buildMatch(highs, lows, closes, start, end, resistance, slope, intercept, breakout), nil
	}
	return nil, nil
}

// resistanceTouches finds the indices whose highs fall in the most crowded
// histogram bin of the section, approximating a flat resistance zone.
func (d *AscendingTriangle) resistanceTouches(highs []float64, start, end int) []int {
	lo, hi := highs[start], highs[start]
	for i := start + 1; i <= end; i++ {
		if highs[i] < lo {
			lo = highs[i]
		}
		if highs[i] > hi {
			hi = highs[i]
		}
	}
	if hi == lo {
		return nil
	}
	width := (hi - lo) / float64(d.HistogramBins)

	counts := make([]int, d.HistogramBins)
	for i := start; i <= end; i++ {
		bin := int((highs[i] - lo) / width)
		if bin >= d.HistogramBins {
			bin = d.HistogramBins - 1
		}
		counts[bin]++
	}
	best := 0
	for b, c := range counts {
		if c > counts[best] {
			best = b
		}
	}
	zoneMin := lo + float64(best)*width
	zoneMax := zoneMin + width

	var touches []int
	for i := start; i <= end; i++ {
		if highs[i] >= zoneMin && highs[i] <= zoneMax {
			touches = append(touches, i)
		}
	}
	return touches
}

func (d *AscendingTriangle) buildMatch(highs, lows, closes []float64, start, end int, resistance, slope, intercept float64, breakout int) *model.PatternMatch {
	supportAtStart := slope*float64(start) + intercept
	height := resistance - supportAtStart

	points := []model.PatternPoint{
		{Label: "pattern_start", BarIndex: start, Price: supportAtStart},
		{Label: "pattern_end", BarIndex: end, Price: closes[end]},
		{Label: "resistance", BarIndex: end, Price: resistance},
	}

	targets := map[string]float64{"Height projection": resistance + height}
	confirmed := breakout >= 0
	summary := fmt.Sprintf("ascending triangle with resistance %.2f, still forming", resistance)
	if confirmed {
		points = append(points, model.PatternPoint{Label: "breakout", BarIndex: breakout, Price: closes[breakout]})
		if ext, err := fibonacci.Extensions(supportAtStart, resistance, closes[breakout]); err == nil {
			for k, v := range ext {
				targets[k] = v
			}
		} else {
			log.Printf("[WARN] ascending triangle fibonacci targets: %v", err)
		}
		summary = fmt.Sprintf("ascending triangle with resistance %.2f, breakout at %.2f",
			resistance, closes[breakout])
	}

	return &model.PatternMatch{
		Type:      d.Type(),
		Direction: d.Direction(),
		Points:    points,
		Targets:   targets,
		Confirmed: confirmed,
		Summary:   summary,
	}
}
