// Package pattern implements chart-pattern detectors over OHLCV series.
//
// Every detector scans a full series and reports the first occurrence it
// finds. A nil match with a nil error means the pattern is absent; errors are
// reserved for series that are too short to evaluate.
package pattern

import (
	"fmt"

	"PatternScout/internal/model"
)

// Detector finds one kind of chart pattern in a price series.
type Detector interface {
	Type() model.PatternType
	Direction() model.Direction
	Detect(series *model.PriceSeries) (*model.PatternMatch, error)
}

// Default returns all detectors, bullish patterns first.
func Default() []Detector {
	return []Detector{
		NewCupAndHandle(),
		NewDoubleBottom(),
		NewAscendingTriangle(),
		NewFallingWedge(),
		NewHeadAndShoulders(),
		NewDoubleTop(),
		NewRisingWedge(),
	}
}

func errTooShort(t model.PatternType, need, have int) error {
	return fmt.Errorf("%s: need at least %d bars, have %d", t, need, have)
}
