package render

import (
	"fmt"
	"strings"

	"BiasDesk/internal/model"
)

// mergedTail is how many of the latest merged rows the report shows.
const mergedTail = 5

// FormatReport formats a full analysis report as plain text.
func FormatReport(rep *model.Report) string {
	var b strings.Builder

	stamp := ""
	if !rep.GeneratedAt.IsZero() {
		stamp = " | " + rep.GeneratedAt.Format("2006-01-02 15:04")
	}
	b.WriteString(fmt.Sprintf("📊 BiasDesk session report%s\n\n", stamp))

	// Verdict
	b.WriteString(fmt.Sprintf("🧭 Session: %s (confidence %s, call %s)\n",
		rep.Session.Bias, rep.Session.Confidence, rep.Session.Direction))
	b.WriteString(fmt.Sprintf("  Daily: %s%s\n", rep.Daily.Verdict, dailyDetail(rep.Daily)))
	b.WriteString(fmt.Sprintf("  4H:    %s%s\n", rep.H4.Verdict, h4Detail(rep.H4)))
	b.WriteString(fmt.Sprintf("  Trend: %s%s\n\n", rep.Trend.Verdict, trendDetail(rep.Trend)))

	// Inputs
	if len(rep.Normalize) > 0 {
		b.WriteString("📁 Inputs:\n")
		for _, n := range rep.Normalize {
			b.WriteString(fmt.Sprintf("  %-5s %d kept, %d dropped (%s)\n", n.Timeframe, n.Kept, n.Dropped, n.Source))
		}
		b.WriteString("\n")
	}

	if it := rep.Selected; it != nil {
		b.WriteString(fmt.Sprintf("🧠 Bias interpretation | %s %s (lookback %d)\n",
			rep.InterpretTF, it.Bar.Time.Format("2006-01-02 15:04"), it.Lookback))
		writeList(&b, it.Bias, "no structural notes")
		b.WriteString(fmt.Sprintf("  Bias force: %d (%s)\n\n", it.Score, it.Strength))

		b.WriteString("🎯 Trade recommendation:\n")
		writeList(&b, it.Recommendations, "no setup")
		b.WriteString("\n📌 Key price levels:\n")
		b.WriteString("  " + KeyLevels(it.Bar) + "\n\n")
	}

	if len(rep.Patterns) > 0 {
		b.WriteString(fmt.Sprintf("🧱 Structure patterns (%s):\n", rep.InterpretTF))
		for _, p := range rep.Patterns {
			b.WriteString(fmt.Sprintf("  %-13s %s → %s entry %.2f\n",
				p.Kind, p.Start.Format("2006-01-02 15:04"), p.End.Format("2006-01-02 15:04"), p.EntryPrice))
		}
		b.WriteString("\n")
	}

	if n := len(rep.Merged); n > 0 {
		b.WriteString("🔀 Cross-timeframe (latest rows):\n")
		for _, r := range rep.Merged[max(0, n-mergedTail):] {
			b.WriteString(fmt.Sprintf("  %s close %.2f  %-15s session %s\n",
				r.Time.Format("2006-01-02 15:04"), r.Intraday.Close, r.Mode, r.SessionBias))
		}
		b.WriteString("\n")
	}

	if bt := rep.Backtest; bt != nil {
		b.WriteString("📈 Backtest: " + BacktestSummary(bt) + "\n\n")
	}

	// Warnings
	if len(rep.Warnings) > 0 {
		b.WriteString("⚠️ Warnings:\n")
		writeList(&b, rep.Warnings, "")
	}

	return b.String()
}

// KeyLevels formats the price levels of one bar on a single line. Absent
// optional fields print as "-".
func KeyLevels(bar model.Bar) string {
	return fmt.Sprintf("VAL: %.2f | POC: %.2f | VAH: %.2f | VWAP: %s | Close: %.2f | Volume: %s | Trades: %s",
		bar.VAL, bar.POC, bar.VAH, optional(bar.VWAP, 2), bar.Close, optional(bar.Volume, 0), optional(bar.Trades, 0))
}

// BacktestSummary reports accuracy, or that no directional call was made.
func BacktestSummary(bt *model.BacktestResult) string {
	acc, ok := bt.Accuracy()
	if !ok {
		return fmt.Sprintf("no directional calls over %d sessions (%d skipped)", len(bt.Sessions), bt.Skipped)
	}
	return fmt.Sprintf("%.1f%% accuracy, %d/%d directional calls over %d sessions (%d skipped)",
		acc*100, bt.Hits, bt.Directional, len(bt.Sessions), bt.Skipped)
}

func dailyDetail(d model.DailyAggregate) string {
	if d.Insufficient {
		return " (insufficient data)"
	}
	src := ""
	if d.Source != model.TFDaily {
		src = ", from " + string(d.Source)
	}
	return fmt.Sprintf(" (POC rising %v, VWAP>POC %d/%d, above VAH %d, below VAL %d%s)",
		d.POCRising, d.VWAPOverPOC, d.Bars, d.ClosesAboveVAH, d.ClosesBelowVAL, src)
}

func h4Detail(h model.H4Aggregate) string {
	if h.Insufficient {
		return " (insufficient data)"
	}
	src := ""
	if h.Source != model.TF4H {
		src = ", from " + string(h.Source)
	}
	return fmt.Sprintf(" (VWAP>POC %d/%d, above VAH %d, below VAL %d%s)",
		h.VWAPOverPOC, h.Bars, h.ClosesAboveVAH, h.ClosesBelowVAL, src)
}

func trendDetail(t model.TrendAggregate) string {
	if t.Insufficient {
		return " (insufficient data)"
	}
	return fmt.Sprintf(" (Δprice %+.2f, Δvwap %+.2f over %d bars)", t.PriceDelta, t.VWAPDelta, t.Bars)
}

func writeList(b *strings.Builder, items []string, empty string) {
	if len(items) == 0 && empty != "" {
		b.WriteString("  - " + empty + "\n")
		return
	}
	for _, it := range items {
		b.WriteString("  - " + it + "\n")
	}
}

func optional(f model.Float, prec int) string {
	v, ok := f.Get()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.*f", prec, v)
}
