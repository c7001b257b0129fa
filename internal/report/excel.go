package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"PatternScout/internal/fibonacci"
	"PatternScout/internal/model"
)

// ExcelWriter writes scan reports into xlsx workbooks under Dir.
type ExcelWriter struct {
	Dir string
}

func NewExcelWriter(dir string) *ExcelWriter {
	return &ExcelWriter{Dir: dir}
}

// WriteWorkbook writes one workbook covering a batch of scan reports and
// returns the file path. The workbook has a Summary sheet plus one sheet per
// symbol with indicator values and pattern details.
func (w *ExcelWriter) WriteWorkbook(name string, reports []*model.ScanReport) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummary(f, reports); err != nil {
		return "", err
	}
	for _, r := range reports {
		if err := w.writeSymbolSheet(f, r); err != nil {
			return "", err
		}
	}

	path := filepath.Join(w.Dir, name+".xlsx")
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save workbook: %w", err)
	}
	return path, nil
}

func (w *ExcelWriter) writeSummary(f *excelize.File, reports []*model.ScanReport) error {
	const sheet = "Summary"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}

	header := []interface{}{"Symbol", "Interval", "Bars", "Close", "Signal", "Confidence %", "Bias", "Patterns", "Scanned At"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "I1", bold)
	}

	for i, r := range reports {
		row := []interface{}{
			r.Symbol,
			r.Interval,
			r.BarCount,
			r.Indicators.Close,
			string(r.Verdict.Signal),
			r.Verdict.Confidence,
			r.Bias(),
			len(r.Matches),
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row %s: %w", r.Symbol, err)
		}
	}
	return nil
}

func (w *ExcelWriter) writeSymbolSheet(f *excelize.File, r *model.ScanReport) error {
	sheet := sanitizeSheetName(r.Symbol)
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Symbol", r.Symbol},
		{"Interval", r.Interval},
		{"Bars", r.BarCount},
		{"From", r.From.Format("2006-01-02")},
		{"To", r.To.Format("2006-01-02")},
		{},
		{"Close", r.Indicators.Close},
		{"SMA20", r.Indicators.SMA20},
		{"SMA50", r.Indicators.SMA50},
		{"SMA200", r.Indicators.SMA200},
		{"RSI(14)", r.Indicators.RSI14},
		{"MACD", r.Indicators.MACD},
		{"MACD signal", r.Indicators.MACDSignal},
		{"MACD histogram", r.Indicators.MACDHist},
		{},
		{"Verdict", string(r.Verdict.Signal)},
		{"Confidence %", r.Verdict.Confidence},
		{"Explanation", r.Verdict.Explanation},
	}
	if r.Crossover != nil {
		rows = append(rows,
			[]interface{}{"MA crossover", string(r.Crossover.Decision)},
			[]interface{}{"Alignment", r.Crossover.Alignment},
			[]interface{}{"Divergence", r.Crossover.Divergence},
		)
	}
	line := 1
	for _, row := range rows {
		if len(row) > 0 {
			if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", line), &row); err != nil {
				return fmt.Errorf("write %s row %d: %w", sheet, line, err)
			}
		}
		line++
	}

	if len(r.Matches) > 0 {
		line++
		header := []interface{}{"Pattern", "Direction", "Status", "Summary", "Target", "Price"}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", line), &header); err != nil {
			return fmt.Errorf("write %s pattern header: %w", sheet, err)
		}
		line++
		for _, m := range r.Matches {
			status := "forming"
			if m.Confirmed {
				status = "confirmed"
			}
			names := fibonacci.SortedNames(m.Targets)
			if len(names) == 0 {
				row := []interface{}{patternLabel(m.Type), string(m.Direction), status, m.Summary}
				if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", line), &row); err != nil {
					return fmt.Errorf("write %s pattern row: %w", sheet, err)
				}
				line++
				continue
			}
			for i, name := range names {
				row := []interface{}{"", "", "", "", name, m.Targets[name]}
				if i == 0 {
					row = []interface{}{patternLabel(m.Type), string(m.Direction), status, m.Summary, name, m.Targets[name]}
				}
				if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", line), &row); err != nil {
					return fmt.Errorf("write %s pattern row: %w", sheet, err)
				}
				line++
			}
		}
	}

	for _, warn := range r.Warnings {
		line++
		f.SetCellValue(sheet, fmt.Sprintf("A%d", line), "Warning: "+warn)
	}
	return nil
}

// sanitizeSheetName keeps symbol names within Excel's sheet naming rules.
func sanitizeSheetName(symbol string) string {
	out := make([]rune, 0, len(symbol))
	for _, r := range symbol {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	if len(out) > 31 {
		out = out[:31]
	}
	return string(out)
}
