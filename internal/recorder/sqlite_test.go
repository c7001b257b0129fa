package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"PatternScout/internal/model"
)

func testReport(id, symbol string, ts time.Time) *model.ScanReport {
	return &model.ScanReport{
		ID:       id,
		Symbol:   symbol,
		Interval: "1d",
		BarCount: 365,
		Indicators: model.IndicatorSet{
			Close: 101.5, SMA20: 100, SMA50: 98, SMA200: 90,
			RSI14: 55, MACD: 0.4, MACDSignal: 0.3, MACDHist: 0.1,
		},
		Verdict: model.Verdict{
			Signal:      model.SignalBuy,
			Confidence:  66.67,
			Explanation: "test verdict",
		},
		Crossover: &model.CrossoverDecision{Decision: model.SignalHold, Alignment: "Golden"},
		Matches: []model.PatternMatch{
			{
				Type:      model.PatternDoubleBottom,
				Direction: model.Bullish,
				Points: []model.PatternPoint{
					{Label: "first_low", BarIndex: 10, Price: 95},
					{Label: "second_low", BarIndex: 45, Price: 95.5},
				},
				Targets:   map[string]float64{"Fib 0.618": 108.2},
				Confirmed: true,
				Summary:   "test double bottom",
			},
		},
		ChartPath: "data/charts/test.html",
		CreatedAt: ts,
	}
}

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { rec.Close() })
	return rec
}

func TestRecordAndQueryScans(t *testing.T) {
	rec := openTestRecorder(t)

	base := time.Now().Add(-time.Hour)
	if err := rec.RecordScan(testReport("scan-1", "BTC-USD", base)); err != nil {
		t.Fatalf("record scan: %v", err)
	}
	if err := rec.RecordScan(testReport("scan-2", "ETH-USD", base.Add(time.Minute))); err != nil {
		t.Fatalf("record scan: %v", err)
	}

	scans, err := rec.LatestScans(10)
	if err != nil {
		t.Fatalf("latest scans: %v", err)
	}
	if len(scans) != 2 {
		t.Fatalf("expected 2 scans, got %d", len(scans))
	}
	// Newest first
	if scans[0].ID != "scan-2" {
		t.Errorf("expected scan-2 first, got %s", scans[0].ID)
	}
	got := scans[1]
	if got.Symbol != "BTC-USD" || got.Verdict.Signal != model.SignalBuy {
		t.Errorf("unexpected row: %+v", got)
	}
	if got.Indicators.Close != 101.5 || got.Indicators.RSI14 != 55 {
		t.Errorf("indicators not round-tripped: %+v", got.Indicators)
	}
	if got.Crossover == nil || got.Crossover.Decision != model.SignalHold {
		t.Errorf("crossover decision not round-tripped: %+v", got.Crossover)
	}
}

func TestScansForSymbol(t *testing.T) {
	rec := openTestRecorder(t)

	base := time.Now()
	for i, sym := range []string{"BTC-USD", "ETH-USD", "BTC-USD"} {
		r := testReport("", sym, base.Add(time.Duration(i)*time.Minute))
		r.ID = sym + "-" + r.CreatedAt.Format("150405")
		if err := rec.RecordScan(r); err != nil {
			t.Fatalf("record scan: %v", err)
		}
	}

	scans, err := rec.ScansForSymbol("BTC-USD", 10)
	if err != nil {
		t.Fatalf("scans for symbol: %v", err)
	}
	if len(scans) != 2 {
		t.Fatalf("expected 2 BTC-USD scans, got %d", len(scans))
	}
	for _, s := range scans {
		if s.Symbol != "BTC-USD" {
			t.Errorf("unexpected symbol %s", s.Symbol)
		}
	}
}

func TestRecentMatches(t *testing.T) {
	rec := openTestRecorder(t)

	if err := rec.RecordScan(testReport("scan-1", "BTC-USD", time.Now())); err != nil {
		t.Fatalf("record scan: %v", err)
	}

	matches, err := rec.RecentMatches(10)
	if err != nil {
		t.Fatalf("recent matches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.Type != model.PatternDoubleBottom || !m.Confirmed {
		t.Errorf("unexpected match: %+v", m)
	}
	if len(m.Points) != 2 || m.Points[0].Label != "first_low" {
		t.Errorf("points not round-tripped: %+v", m.Points)
	}
	if m.Targets["Fib 0.618"] != 108.2 {
		t.Errorf("targets not round-tripped: %+v", m.Targets)
	}
}

func TestNoopRecorder(t *testing.T) {
	rec := NewNoopRecorder()
	if err := rec.RecordScan(testReport("x", "BTC-USD", time.Now())); err != nil {
		t.Errorf("noop record: %v", err)
	}
	scans, err := rec.LatestScans(5)
	if err != nil || scans != nil {
		t.Errorf("noop latest: %v, %v", scans, err)
	}
}
