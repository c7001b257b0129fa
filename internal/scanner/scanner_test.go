package scanner

import (
	"testing"

	"PatternScout/internal/collector"
	"PatternScout/internal/model"
)

func TestScan_MockData(t *testing.T) {
	col := collector.NewCollector(&collector.MockFetcher{Price: 100}, "1d", 365)
	s := New(col)

	report, err := s.Scan("BTC-USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.ID == "" {
		t.Error("report should carry an ID")
	}
	if report.Symbol != "BTC-USD" || report.Interval != "1d" {
		t.Errorf("report metadata wrong: %s %s", report.Symbol, report.Interval)
	}
	if report.BarCount != 365 {
		t.Errorf("expected 365 bars, got %d", report.BarCount)
	}
	if !report.From.Before(report.To) {
		t.Error("From should precede To")
	}
	if report.Verdict.Signal == "" {
		t.Error("verdict should be populated")
	}
	// 365 bars is enough for the crossover strategy.
	if report.Crossover == nil {
		t.Errorf("expected crossover decision, warnings: %v", report.Warnings)
	}
	if report.Indicators.Close == 0 {
		t.Error("indicators should carry the latest close")
	}
}

func TestScan_ShortHistory(t *testing.T) {
	col := collector.NewCollector(&collector.MockFetcher{Price: 100}, "1d", 40)
	s := New(col)

	report, err := s.Scan("ETH-USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Verdict.Signal != model.SignalInsufficient {
		t.Errorf("expected INSUFFICIENT_DATA on 40 bars, got %s", report.Verdict.Signal)
	}
	// Crossover needs 201 bars, so it degrades to a warning.
	if report.Crossover != nil {
		t.Error("crossover should be skipped on short history")
	}
	if len(report.Warnings) == 0 {
		t.Error("expected warnings for skipped strategies and detectors")
	}
}

func TestScan_FetchFailure(t *testing.T) {
	col := collector.NewCollector(&collector.MockFetcher{Price: 100}, "1d", 0)
	s := New(col)
	if _, err := s.Scan("BTC-USD"); err == nil {
		t.Error("expected error when the fetch returns no bars")
	}
}

func TestAnalyze_DetectorFailuresDegrade(t *testing.T) {
	// 65 bars: long enough for the verdict, too short for several detectors.
	col := collector.NewCollector(&collector.MockFetcher{Price: 100}, "1d", 65)
	s := New(col)

	series, err := col.Collect("BTC-USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	report := s.Analyze(series)
	if report.Verdict.Signal == model.SignalInsufficient {
		t.Error("65 bars should be enough for the indicator vote")
	}
	if len(report.Warnings) == 0 {
		t.Error("expected too-short warnings from long-window detectors")
	}
}
