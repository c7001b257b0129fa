package recorder

import "PatternScout/internal/model"

// Recorder persists scan history for later inspection.
type Recorder interface {
	RecordScan(report *model.ScanReport) error
	LatestScans(limit int) ([]model.ScanReport, error)
	ScansForSymbol(symbol string, limit int) ([]model.ScanReport, error)
	RecentMatches(limit int) ([]model.PatternMatch, error)
	Close() error
}
