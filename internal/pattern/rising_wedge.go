package pattern

import (
	"fmt"

	"PatternScout/internal/calculator"
	"PatternScout/internal/model"
)

// RisingWedge detects an ascending support trendline between a peak and a
// later trough whose fitted slope exceeds the threshold, confirmed by a
// breakdown below the pattern's starting low.
type RisingWedge struct {
	Window         int
	AngleThreshold float64 // minimum positive slope per bar, in price units
}

// NewRisingWedge returns a detector with default thresholds.
func NewRisingWedge() *RisingWedge {
	return &RisingWedge{Window: 20, AngleThreshold: 0.03}
}

func (d *RisingWedge) Type() model.PatternType    { return model.PatternRisingWedge }
func (d *RisingWedge) Direction() model.Direction { return model.Bearish }

func (d *RisingWedge) Detect(series *model.PriceSeries) (*model.PatternMatch, error) {
	minBars := d.Window + 2
	if len(series.Bars) < minBars {
		return nil, errTooShort(d.Type(), minBars, len(series.Bars))
	}
	highs := series.Highs()
	lows := series.Lows()

	peaks := calculator.RollingMaxIndices(highs, d.Window)
	troughs := calculator.RollingMinIndices(lows, d.Window)

	// The earliest trendline may anchor at a low the market never revisits;
	// a later one can still complete the pattern.
	for _, tl := range findTrendlines(peaks, troughs, lows, d.AngleThreshold, true) {
		// Breakdown: price falls below the low at the pattern start.
		breakdown := calculator.MinIndex(lows, tl.trough, len(lows))
		if lows[breakdown] >= lows[tl.peak] {
			continue
		}

		return &model.PatternMatch{
			Type:      d.Type(),
			Direction: d.Direction(),
			Points: []model.PatternPoint{
				{Label: "trendline_start", BarIndex: tl.peak, Price: lows[tl.peak]},
				{Label: "trendline_end", BarIndex: tl.trough, Price: lows[tl.trough]},
				{Label: "breakdown", BarIndex: breakdown, Price: lows[breakdown]},
			},
			Confirmed: true,
			Summary: fmt.Sprintf("rising wedge from bar %d to %d, breakdown at %.2f",
				tl.peak, tl.trough, lows[breakdown]),
		}, nil
	}
	return nil, nil
}

// trendline anchors a fitted line at a peak and a later trough.
type trendline struct {
	peak, trough int
}

// findTrendlines pairs each peak with the first later trough whose fitted
// support (rising=true) or resistance (rising=false) slope passes the
// threshold. At most one pair per peak, in peak order.
func findTrendlines(peaks, troughs []int, values []float64, threshold float64, rising bool) []trendline {
	var lines []trendline
	for _, p := range peaks {
		for _, t := range troughs {
			if t <= p {
				continue
			}
			segment := values[p : t+1]
			xs := make([]int, len(segment))
			for i := range xs {
				xs[i] = i
			}
			slope, _, err := calculator.FitLine(xs, segment)
			if err != nil {
				continue
			}
			if (rising && slope > threshold) || (!rising && slope < threshold) {
				lines = append(lines, trendline{peak: p, trough: t})
				break
			}
		}
	}
	return lines
}
