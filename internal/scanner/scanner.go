// Package scanner orchestrates a full symbol scan: fetch history, compute
// indicators and signals, and run every pattern detector.
package scanner

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"PatternScout/internal/analyzer"
	"PatternScout/internal/collector"
	"PatternScout/internal/model"
	"PatternScout/internal/pattern"
)

// Scanner runs the analysis pipeline for single symbols.
type Scanner struct {
	Collector *collector.Collector
	Detectors []pattern.Detector
}

// New creates a Scanner with the default detector set.
func New(col *collector.Collector) *Scanner {
	return &Scanner{Collector: col, Detectors: pattern.Default()}
}

// Scan fetches and analyzes one symbol. Detector failures degrade to
// warnings on the report; only a fetch failure aborts the scan.
func (s *Scanner) Scan(symbol string) (*model.ScanReport, error) {
	series, err := s.Collector.Collect(symbol)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", symbol, err)
	}
	return s.Analyze(series), nil
}

// Analyze runs the pipeline over an already-fetched series.
func (s *Scanner) Analyze(series *model.PriceSeries) *model.ScanReport {
	report := &model.ScanReport{
		ID:         uuid.NewString(),
		Symbol:     series.Symbol,
		Interval:   series.Interval,
		BarCount:   len(series.Bars),
		From:       series.Bars[0].Time,
		To:         series.Bars[len(series.Bars)-1].Time,
		Indicators: analyzer.Indicators(series),
		Verdict:    analyzer.Evaluate(series),
		CreatedAt:  time.Now(),
	}

	if cross, err := analyzer.Crossover(series); err != nil {
		log.Printf("[WARN] crossover strategy skipped for %s: %v", series.Symbol, err)
		report.Warnings = append(report.Warnings, fmt.Sprintf("crossover strategy skipped: %v", err))
	} else {
		report.Crossover = cross
	}

	for _, d := range s.Detectors {
		match, err := d.Detect(series)
		if err != nil {
			log.Printf("[WARN] %s detector on %s: %v", d.Type(), series.Symbol, err)
			report.Warnings = append(report.Warnings, err.Error())
			continue
		}
		if match != nil {
			report.Matches = append(report.Matches, *match)
		}
	}
	return report
}
