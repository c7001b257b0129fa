// Package chart renders scan results as interactive HTML candlestick charts.
package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"PatternScout/internal/calculator"
	"PatternScout/internal/model"
)

// Renderer writes one HTML chart page per scan under Dir.
type Renderer struct {
	Dir string
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{Dir: dir}
}

// Render writes a page with a candlestick chart (SMA overlays and pattern
// markers) plus RSI and MACD panels, and returns the file path.
func (r *Renderer) Render(series *model.PriceSeries, report *model.ScanReport) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("PatternScout %s", series.Symbol)
	page.AddCharts(
		r.priceChart(series, report),
		r.rsiChart(series),
		r.macdChart(series),
	)

	name := fmt.Sprintf("%s_%s_%s.html",
		sanitizeFileName(series.Symbol), series.Interval, report.CreatedAt.Format("20060102_150405"))
	path := filepath.Join(r.Dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return "", fmt.Errorf("render chart: %w", err)
	}
	return path, nil
}

func (r *Renderer) priceChart(series *model.PriceSeries, report *model.ScanReport) *charts.Kline {
	kline := charts.NewKLine()
	kline.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1400px",
			Height: "600px",
			Theme:  types.ThemeInfographic,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s (%s)", series.Symbol, series.Interval),
			Subtitle: fmt.Sprintf("%s, confidence %.0f%%", report.Verdict.Signal, report.Verdict.Confidence),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: true,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)

	x := make([]string, 0, len(series.Bars))
	y := make([]opts.KlineData, 0, len(series.Bars))
	for _, bar := range series.Bars {
		x = append(x, bar.Time.Format("2006-01-02"))
		y = append(y, opts.KlineData{Value: []float64{bar.Open, bar.Close, bar.Low, bar.High}})
	}
	kline.SetXAxis(x).
		AddSeries("Price", y).
		SetSeriesOptions(
			charts.WithItemStyleOpts(opts.ItemStyle{
				Color:        "#26a69a",
				Color0:       "#ef5350",
				BorderColor:  "#26a69a",
				BorderColor0: "#ef5350",
			}),
		)

	closes := series.Closes()
	line := charts.NewLine()
	line.SetXAxis(x).
		AddSeries("SMA20", lineData(calculator.SMASeries(closes, 20), 20)).
		AddSeries("SMA50", lineData(calculator.SMASeries(closes, 50), 50)).
		AddSeries("SMA200", lineData(calculator.SMASeries(closes, 200), 200)).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{Smooth: true}))
	kline.Overlap(line)

	if markers := patternMarkers(series, report.Matches); markers != nil {
		scatter := charts.NewScatter()
		scatter.SetXAxis(x).
			AddSeries("Patterns", markers).
			SetSeriesOptions(
				charts.WithItemStyleOpts(opts.ItemStyle{
					Color:       "#ffb300",
					BorderColor: "#ffb300",
				}),
				charts.WithLabelOpts(opts.Label{
					Show:      true,
					Position:  "top",
					Formatter: "{b0}",
				}),
			)
		kline.Overlap(scatter)
	}
	return kline
}

// patternMarkers builds one scatter slice aligned with the bar axis; bars
// without a structural point get an invisible placeholder.
func patternMarkers(series *model.PriceSeries, matches []model.PatternMatch) []opts.ScatterData {
	if len(matches) == 0 {
		return nil
	}
	labels := make(map[int]string, 8)
	prices := make(map[int]float64, 8)
	for _, m := range matches {
		for _, p := range m.Points {
			if p.BarIndex < 0 || p.BarIndex >= len(series.Bars) {
				continue
			}
			if cur, ok := labels[p.BarIndex]; ok {
				labels[p.BarIndex] = cur + "," + p.Label
			} else {
				labels[p.BarIndex] = p.Label
				prices[p.BarIndex] = p.Price
			}
		}
	}
	if len(labels) == 0 {
		return nil
	}

	data := make([]opts.ScatterData, len(series.Bars))
	for i := range data {
		if label, ok := labels[i]; ok {
			data[i] = opts.ScatterData{
				Value:      prices[i],
				Name:       label,
				Symbol:     "diamond",
				SymbolSize: 14,
			}
		} else {
			data[i] = opts.ScatterData{SymbolSize: 0}
		}
	}
	return data
}

func (r *Renderer) rsiChart(series *model.PriceSeries) *charts.Line {
	closes := series.Closes()
	x := barLabels(series)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1400px",
			Height: "250px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "RSI(14)"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	line.SetXAxis(x).
		AddSeries("RSI", lineData(calculator.RSISeries(closes, 14), 0)).
		SetSeriesOptions(
			charts.WithMarkLineNameYAxisItemOpts(
				opts.MarkLineNameYAxisItem{Name: "overbought", YAxis: 70},
				opts.MarkLineNameYAxisItem{Name: "oversold", YAxis: 30},
			),
		)
	return line
}

func (r *Renderer) macdChart(series *model.PriceSeries) *charts.Line {
	closes := series.Closes()
	x := barLabels(series)
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  "1400px",
			Height: "250px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "MACD(12,26,9)"}),
		charts.WithYAxisOpts(opts.YAxis{Scale: true}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	)
	if macd, err := calculator.CalculateMACD(closes, 12, 26, 9); err == nil {
		line.SetXAxis(x).
			AddSeries("MACD", lineData(macd.MACD, 0)).
			AddSeries("Signal", lineData(macd.Signal, 0))
	}
	return line
}

func barLabels(series *model.PriceSeries) []string {
	x := make([]string, 0, len(series.Bars))
	for _, bar := range series.Bars {
		x = append(x, bar.Time.Format("2006-01-02"))
	}
	return x
}

// lineData converts a series to chart points, blanking the warmup prefix so
// zero-filled values do not drag the axis down.
func lineData(values []float64, warmup int) []opts.LineData {
	data := make([]opts.LineData, 0, len(values))
	for i, v := range values {
		if i < warmup-1 {
			data = append(data, opts.LineData{Value: "-"})
			continue
		}
		data = append(data, opts.LineData{Value: v})
	}
	return data
}

func sanitizeFileName(symbol string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '^', '?', '*':
			return '_'
		}
		return r
	}, symbol)
}
