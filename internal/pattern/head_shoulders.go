package pattern

import (
	"fmt"

	"PatternScout/internal/calculator"
	"PatternScout/internal/model"
)

// HeadAndShoulders detects three peaks spaced a fixed window apart where the
// middle peak is flanked by neckline troughs, confirmed by a breakdown below
// the lower neckline.
type HeadAndShoulders struct {
	Window int
}

// NewHeadAndShoulders returns a detector with the default window.
func NewHeadAndShoulders() *HeadAndShoulders {
	return &HeadAndShoulders{Window: 20}
}

func (d *HeadAndShoulders) Type() model.PatternType    { return model.PatternHeadAndShoulders }
func (d *HeadAndShoulders) Direction() model.Direction { return model.Bearish }

func (d *HeadAndShoulders) Detect(series *model.PriceSeries) (*model.PatternMatch, error) {
	minBars := 4*d.Window + 1
	if len(series.Bars) < minBars {
		return nil, errTooShort(d.Type(), minBars, len(series.Bars))
	}
	highs := series.Highs()
	lows := series.Lows()

	isPeak := make(map[int]bool)
	for _, idx := range calculator.RollingMaxIndices(highs, d.Window) {
		isPeak[idx] = true
	}

	for i := 0; i+4*d.Window < len(series.Bars); i++ {
		left := i
		head := i + 2*d.Window
		right := i + 4*d.Window
		if !isPeak[left] || !isPeak[head] || !isPeak[right] {
			continue
		}

		leftNeck := lows[i+d.Window]
		rightNeck := lows[i+3*d.Window]
		neckline := leftNeck
		if rightNeck < neckline {
			neckline = rightNeck
		}

		for k := right; k < len(lows); k++ {
			if lows[k] < neckline {
				return &model.PatternMatch{
					Type:      d.Type(),
					Direction: d.Direction(),
					Points: []model.PatternPoint{
						{Label: "left_shoulder", BarIndex: left, Price: highs[left]},
						{Label: "head", BarIndex: head, Price: highs[head]},
						{Label: "right_shoulder", BarIndex: right, Price: highs[right]},
						{Label: "left_neckline", BarIndex: i + d.Window, Price: leftNeck},
						{Label: "right_neckline", BarIndex: i + 3*d.Window, Price: rightNeck},
						{Label: "breakdown", BarIndex: k, Price: lows[k]},
					},
					Confirmed: true,
					Summary: fmt.Sprintf("head and shoulders with head %.2f, breakdown below neckline %.2f",
						highs[head], neckline),
				}, nil
			}
		}
	}
	return nil, nil
}
