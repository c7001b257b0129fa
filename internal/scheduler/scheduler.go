package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"PatternScout/internal/chart"
	"PatternScout/internal/model"
	"PatternScout/internal/notifier"
	"PatternScout/internal/recorder"
	"PatternScout/internal/report"
	"PatternScout/internal/scanner"
)

// Scheduler manages the periodic watchlist scan.
type Scheduler struct {
	Cron     *cron.Cron
	Scanner  *scanner.Scanner
	Notifier notifier.Notifier
	Recorder recorder.Recorder
	Renderer *chart.Renderer
	Excel    *report.ExcelWriter
	Symbols  []string
	Ctx      context.Context
}

// NewScheduler creates a Scheduler over the given watchlist.
func NewScheduler(ctx context.Context, sc *scanner.Scanner, n notifier.Notifier, rec recorder.Recorder, rend *chart.Renderer, excel *report.ExcelWriter, symbols []string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Scanner:  sc,
		Notifier: n,
		Recorder: rec,
		Renderer: rend,
		Excel:    excel,
		Symbols:  symbols,
		Ctx:      ctx,
	}
}

// RegisterAll registers the scan task.
func (s *Scheduler) RegisterAll(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the watchlist scan immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

func (s *Scheduler) scanTask() {
	log.Printf("[INFO] scanning watchlist (%d symbols)", len(s.Symbols))

	reports := make([]*model.ScanReport, 0, len(s.Symbols))
	for _, symbol := range s.Symbols {
		r := s.scanOne(symbol)
		if r == nil {
			continue
		}
		reports = append(reports, r)

		// Alert only when something is worth reading.
		if r.Verdict.Signal != model.SignalHold || len(r.Matches) > 0 {
			s.trySend(report.FormatScanReport(r))
		}
	}
	if len(reports) == 0 {
		return
	}

	if len(reports) > 1 {
		s.trySend(report.FormatWatchlistSummary(reports))
	}

	if s.Excel != nil {
		name := fmt.Sprintf("scan_%s", time.Now().Format("20060102_150405"))
		path, err := s.Excel.WriteWorkbook(name, reports)
		if err != nil {
			log.Printf("[ERROR] write workbook: %v", err)
		} else {
			log.Printf("[INFO] workbook written: %s", path)
		}
	}
}

// scanOne runs the pipeline for one symbol and records the outcome. A nil
// return means the fetch itself failed.
func (s *Scheduler) scanOne(symbol string) *model.ScanReport {
	series, err := s.Scanner.Collector.Collect(symbol)
	if err != nil {
		log.Printf("[ERROR] collect %s: %v", symbol, err)
		s.trySend(fmt.Sprintf("❌ Scan failed for %s: %v", symbol, err))
		return nil
	}
	r := s.Scanner.Analyze(series)

	if s.Renderer != nil {
		path, err := s.Renderer.Render(series, r)
		if err != nil {
			log.Printf("[ERROR] render chart for %s: %v", symbol, err)
		} else {
			r.ChartPath = path
		}
	}

	if err := s.Recorder.RecordScan(r); err != nil {
		log.Printf("[ERROR] record scan %s: %v", symbol, err)
	}
	log.Printf("[INFO] %s: %s (%.0f%%), %d pattern(s)", symbol, r.Verdict.Signal, r.Verdict.Confidence, len(r.Matches))
	return r
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	switch fields[0] {
	case "/scan":
		if len(fields) > 1 {
			r := s.scanOne(strings.ToUpper(fields[1]))
			if r == nil {
				return fmt.Sprintf("Scan failed for %s, see logs.", fields[1])
			}
			return report.FormatScanReport(r)
		}
		go s.scanTask()
		return "Watchlist scan started."
	case "/price":
		if len(fields) < 2 {
			return "Usage: /price SYMBOL"
		}
		symbol := strings.ToUpper(fields[1])
		price, err := s.Scanner.Collector.Fetcher.FetchCurrentPrice(symbol)
		if err != nil {
			return fmt.Sprintf("Price lookup failed for %s: %v", symbol, err)
		}
		return fmt.Sprintf("%s: %s", symbol, report.FormatPrice(price))
	case "/latest":
		scans, err := s.Recorder.LatestScans(5)
		if err != nil {
			return fmt.Sprintf("Query failed: %v", err)
		}
		if len(scans) == 0 {
			return "No scans recorded yet."
		}
		refs := make([]*model.ScanReport, 0, len(scans))
		for i := range scans {
			refs = append(refs, &scans[i])
		}
		return report.FormatWatchlistSummary(refs)
	case "/watchlist":
		return "Watchlist: " + strings.Join(s.Symbols, ", ")
	default:
		return helpText
	}
}

const helpText = "Commands:\n• /scan - scan the watchlist now\n• /scan SYMBOL - scan one symbol\n• /price SYMBOL - current price\n• /latest - last recorded scans\n• /watchlist - configured symbols"

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
