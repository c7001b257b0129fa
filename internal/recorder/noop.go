package recorder

import "PatternScout/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordScan(_ *model.ScanReport) error { return nil }
func (n *NoopRecorder) LatestScans(_ int) ([]model.ScanReport, error) {
	return nil, nil
}
func (n *NoopRecorder) ScansForSymbol(_ string, _ int) ([]model.ScanReport, error) {
	return nil, nil
}
func (n *NoopRecorder) RecentMatches(_ int) ([]model.PatternMatch, error) {
	return nil, nil
}
func (n *NoopRecorder) Close() error { return nil }
