package notifier

import (
	"fmt"
	"strings"
	"time"

	"CandleScout/internal/model"
)

// FormatScanReport formats a finished scan into a Telegram message.
func FormatScanReport(r *model.ScanReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🔍 <b>CandleScout scan</b> | %s\n\n", r.FinishedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Universe: %s — %d tickers\n", r.Source, r.Total))
	b.WriteString(fmt.Sprintf("Scanned: %d | Skipped: %d | Errors: %d\n", r.Scanned, r.Skipped, r.Errors))
	b.WriteString(fmt.Sprintf("Duration: %s\n\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Second)))

	if len(r.Detections) == 0 {
		b.WriteString("No 3-red-1-green reversal found today.")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("🎯 <b>%d signal(s) detected:</b>\n", len(r.Detections)))
	for _, d := range r.Detections {
		b.WriteString(fmt.Sprintf("  • %s\n", d.Symbol))
	}
	b.WriteString("\nSend /detail TICKER for the smoothed bars.")
	return b.String()
}

// FormatDetectionDetail renders the trailing smoothed bars of one detection.
func FormatDetectionDetail(d *model.Detection) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📈 <b>%s</b> | Heikin-Ashi, last bars\n\n", d.Symbol))

	bars := d.Bars
	if len(bars) > 8 {
		bars = bars[len(bars)-8:]
	}
	for _, bar := range bars {
		dir := "🟥"
		switch {
		case bar.Close > bar.Open:
			dir = "🟩"
		case bar.Close == bar.Open:
			dir = "⬜"
		}
		b.WriteString(fmt.Sprintf("%s %s  O %.2f  H %.2f  L %.2f  C %.2f\n",
			dir, bar.Time.Format("01-02"), bar.Open, bar.High, bar.Low, bar.Close))
	}
	return b.String()
}
