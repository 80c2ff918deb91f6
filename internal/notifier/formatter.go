package notifier

import (
	"fmt"
	"strings"
	"time"

	"PortfolioSentinel/internal/model"
)

// FormatReviewReport formats the portfolio action table into a Telegram message.
func FormatReviewReport(rep *model.ReviewReport) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Portfolio Action Engine</b> | %s\n\n", rep.GeneratedAt.Format("2006-01-02")))
	b.WriteString(formatIndexContext(rep.IndexSymbol, rep.IndexDist, rep.MarketExtended))
	b.WriteString("\n")

	if len(rep.Rows) == 0 {
		b.WriteString("No reviewable positions (all tickers skipped?)\n")
	}
	for _, row := range rep.Rows {
		b.WriteString(fmt.Sprintf("%s [%s] %.2f vs DMA %.2f (%+.2f%%)\n",
			row.Ticker, row.Sector, row.Price, row.DMA200, row.DistPct))
		b.WriteString(fmt.Sprintf("  → <b>%s</b> — %s\n", row.Action, row.Reason))
		if row.SharesToSell > 0 {
			b.WriteString(fmt.Sprintf("  sell %.4f of %.4f shares\n", row.SharesToSell, row.SharesHeld))
		}
	}

	if len(rep.Skipped) > 0 {
		b.WriteString(fmt.Sprintf("\nSkipped (under 200 trading days): %s\n", strings.Join(rep.Skipped, ", ")))
	}
	return b.String()
}

// FormatRotationReport formats the ranked rotation candidates. topN caps
// the number of entries shown; 0 means all.
func FormatRotationReport(rep *model.RotationReport, topN int) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🔄 <b>Rotation Candidates</b> | %s\n\n", rep.GeneratedAt.Format("2006-01-02")))
	b.WriteString(formatIndexContext(rep.IndexSymbol, rep.IndexDist, rep.MarketExtended))
	if rep.MarketExtended {
		b.WriteString("⚠️ Market extended: 15-point penalty applied to all scores\n")
	}
	b.WriteString("\n")

	entries := rep.Entries
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	for i, e := range entries {
		b.WriteString(fmt.Sprintf("%d. <b>%s</b> (%s) — score %d\n", i+1, e.Ticker, e.CompanyName, e.Score))
		b.WriteString(fmt.Sprintf("   %.2f vs DMA %.2f (%+.2f%%) | %s | growth %.0f%% | AI %.0f\n",
			e.Price, e.DMA200, e.DistPct, e.Action, e.GrowthPct3y, e.AIExposure))
	}

	if len(rep.Skipped) > 0 {
		b.WriteString(fmt.Sprintf("\nSkipped (under 200 trading days): %s\n", strings.Join(rep.Skipped, ", ")))
	}
	return b.String()
}

// FormatStrategyRules returns the static strategy rules panel.
func FormatStrategyRules() string {
	return strings.Join([]string{
		"🧠 <b>Strategy Rules</b>",
		"",
		"• Partial sells at +15% / +20% above the 200 DMA",
		"• Never fully exit secular winners",
		"• Buy only near or below the 200 DMA",
		"• Cash is a valid position",
		"• No forced rotation",
	}, "\n")
}

func formatIndexContext(symbol string, dist float64, extended bool) string {
	state := "Normal"
	if extended {
		state = "Extended"
	}
	return fmt.Sprintf("🌍 %s distance from 200 DMA: %+.2f%% (%s)\n", symbol, dist*100, state)
}

// FormatFooter appends the refresh timestamp, mirroring the dashboard caption.
func FormatFooter(t time.Time) string {
	return fmt.Sprintf("Last refreshed: %s", t.Format("2006-01-02 15:04"))
}
