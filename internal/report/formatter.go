package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"PatternScout/internal/fibonacci"
	"PatternScout/internal/model"
)

// FormatScanReport formats a scan result into a Telegram HTML message.
func FormatScanReport(r *model.ScanReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>PatternScout</b> | %s (%s)\n", r.Symbol, r.Interval))
	b.WriteString(fmt.Sprintf("%s | %d bars\n\n", r.CreatedAt.Format("2006-01-02 15:04"), r.BarCount))

	b.WriteString(fmt.Sprintf("Close: %s\n", FormatPrice(r.Indicators.Close)))
	b.WriteString(fmt.Sprintf("SMA20: %.2f | SMA50: %.2f | SMA200: %.2f\n", r.Indicators.SMA20, r.Indicators.SMA50, r.Indicators.SMA200))
	b.WriteString(fmt.Sprintf("RSI(14): %.1f\n", r.Indicators.RSI14))
	b.WriteString(fmt.Sprintf("MACD: %.4f | Signal: %.4f | Hist: %+.4f\n\n", r.Indicators.MACD, r.Indicators.MACDSignal, r.Indicators.MACDHist))

	b.WriteString(fmt.Sprintf("%s <b>Verdict: %s</b> (confidence %.0f%%)\n", signalEmoji(r.Verdict.Signal), r.Verdict.Signal, r.Verdict.Confidence))
	b.WriteString(fmt.Sprintf("  %s\n", r.Verdict.Explanation))

	if r.Crossover != nil {
		b.WriteString(fmt.Sprintf("\n📐 <b>MA crossover:</b> %s", r.Crossover.Decision))
		if r.Crossover.Strong {
			b.WriteString(" (strong)")
		}
		b.WriteString(fmt.Sprintf("\n  Alignment: %s | Divergence: %s\n", r.Crossover.Alignment, r.Crossover.Divergence))
	}

	if len(r.Matches) > 0 {
		b.WriteString("\n🔍 <b>Patterns found:</b>\n")
		for _, m := range r.Matches {
			b.WriteString("  " + FormatMatch(&m))
		}
	} else {
		b.WriteString("\nNo chart patterns detected.\n")
	}

	for _, w := range r.Warnings {
		b.WriteString(fmt.Sprintf("\n⚠️ %s", w))
	}

	return b.String()
}

// FormatMatch formats a single pattern match as one or more indented lines.
func FormatMatch(m *model.PatternMatch) string {
	var b strings.Builder

	status := "forming"
	if m.Confirmed {
		status = "confirmed"
	}
	b.WriteString(fmt.Sprintf("%s %s (%s, %s)\n", directionEmoji(m.Direction), patternLabel(m.Type), m.Direction, status))
	if m.Summary != "" {
		b.WriteString(fmt.Sprintf("    %s\n", m.Summary))
	}
	for _, name := range fibonacci.SortedNames(m.Targets) {
		b.WriteString(fmt.Sprintf("    %s: %.2f\n", name, m.Targets[name]))
	}
	return b.String()
}

// FormatWatchlistSummary formats a one-line-per-symbol digest of a batch scan.
func FormatWatchlistSummary(reports []*model.ScanReport) string {
	var b strings.Builder
	b.WriteString("📋 <b>Watchlist scan</b>\n\n")
	for _, r := range reports {
		b.WriteString(fmt.Sprintf("%s %s: %s (%.0f%%), %d pattern(s)\n",
			signalEmoji(r.Verdict.Signal), r.Symbol, r.Verdict.Signal, r.Verdict.Confidence, len(r.Matches)))
	}
	return b.String()
}

// FormatPrice renders a price with thousands separators for console output.
func FormatPrice(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

func signalEmoji(s model.Signal) string {
	switch s {
	case model.SignalBuy:
		return "🟢"
	case model.SignalSell:
		return "🔴"
	case model.SignalInsufficient:
		return "⚪"
	default:
		return "🟡"
	}
}

func directionEmoji(d model.Direction) string {
	if d == model.Bullish {
		return "📈"
	}
	return "📉"
}

func patternLabel(t model.PatternType) string {
	switch t {
	case model.PatternDoubleBottom:
		return "Double Bottom"
	case model.PatternDoubleTop:
		return "Double Top"
	case model.PatternHeadAndShoulders:
		return "Head & Shoulders"
	case model.PatternRisingWedge:
		return "Rising Wedge"
	case model.PatternFallingWedge:
		return "Falling Wedge"
	case model.PatternCupAndHandle:
		return "Cup & Handle"
	case model.PatternAscendingTriangle:
		return "Ascending Triangle"
	default:
		return string(t)
	}
}
