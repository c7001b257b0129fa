package model

// Direction is the qualitative bias a pattern implies.
type Direction string

const (
	Bullish Direction = "BULLISH"
	Bearish Direction = "BEARISH"
)

// PatternType identifies a chart pattern.
type PatternType string

const (
	PatternDoubleBottom      PatternType = "DOUBLE_BOTTOM"
	PatternDoubleTop         PatternType = "DOUBLE_TOP"
	PatternHeadAndShoulders  PatternType = "HEAD_AND_SHOULDERS"
	PatternRisingWedge       PatternType = "RISING_WEDGE"
	PatternFallingWedge      PatternType = "FALLING_WEDGE"
	PatternCupAndHandle      PatternType = "CUP_AND_HANDLE"
	PatternAscendingTriangle PatternType = "ASCENDING_TRIANGLE"
)

// PatternPoint pins a named structural point of a pattern to a bar.
type PatternPoint struct {
	Label    string  `json:"label"` // "first_low", "head", "breakout", ...
	BarIndex int     `json:"bar_index"`
	Price    float64 `json:"price"`
}

// PatternMatch is one detected occurrence of a chart pattern.
type PatternMatch struct {
	Type      PatternType        `json:"type"`
	Direction Direction          `json:"direction"`
	Points    []PatternPoint     `json:"points"`
	Targets   map[string]float64 `json:"targets,omitempty"` // named price targets (Fibonacci, measured move)
	Confirmed bool               `json:"confirmed"`         // breakout/breakdown observed
	Summary   string             `json:"summary"`
}

// Point returns the point with the given label, if present.
func (m *PatternMatch) Point(label string) (PatternPoint, bool) {
	for _, p := range m.Points {
		if p.Label == label {
			return p, true
		}
	}
	return PatternPoint{}, false
}
