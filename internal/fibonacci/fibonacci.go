// Package fibonacci computes retracement and extension price targets from
// swing points of a detected chart pattern.
package fibonacci

import (
	"errors"
	"fmt"
	"sort"
)

var (
	retracementRatios = []float64{0.236, 0.382, 0.5, 0.618, 0.786}
	extensionRatios   = []float64{1.618, 2.618, 3.618}
)

// Retracements returns retracement levels between a swing low and swing high,
// keyed by a display name like "Fib 0.618".
func Retracements(swingLow, swingHigh float64) (map[string]float64, error) {
	if swingHigh < swingLow {
		return nil, errors.New("swing high must be >= swing low")
	}
	priceRange := swingHigh - swingLow
	levels := make(map[string]float64, len(retracementRatios))
	for _, r := range retracementRatios {
		levels[fmt.Sprintf("Fib %g", r)] = swingLow + priceRange*r
	}
	return levels, nil
}

// Extensions returns extension targets above a breakout price, scaled by the
// swing range.
func Extensions(swingLow, swingHigh, breakout float64) (map[string]float64, error) {
	if swingHigh < swingLow {
		return nil, errors.New("swing high must be >= swing low")
	}
	priceRange := swingHigh - swingLow
	levels := make(map[string]float64, len(extensionRatios))
	for _, r := range extensionRatios {
		levels[fmt.Sprintf("Fib %g ext", r)] = breakout + priceRange*r
	}
	return levels, nil
}

// AllLevels combines retracement and extension targets in one map.
func AllLevels(swingLow, swingHigh, breakout float64) (map[string]float64, error) {
	targets, err := Retracements(swingLow, swingHigh)
	if err != nil {
		return nil, err
	}
	ext, err := Extensions(swingLow, swingHigh, breakout)
	if err != nil {
		return nil, err
	}
	for k, v := range ext {
		targets[k] = v
	}
	return targets, nil
}

// SortedNames returns the target names ordered by price, for stable output.
func SortedNames(targets map[string]float64) []string {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return targets[names[i]] < targets[names[j]] })
	return names
}
