package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"TraderSentiment/internal/model"
)

const rule = "================================================================================"

// FormatHeader opens the console report.
func FormatHeader(runID string, started time.Time) string {
	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString("TRADER SENTIMENT ANALYSIS\n")
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("Run:   %s\n", runID))
	b.WriteString(fmt.Sprintf("Start: %s\n", started.Format("2006-01-02 15:04:05")))
	return b.String()
}

// FormatStageCounts lists every stage counter with thousands separators.
func FormatStageCounts(c model.StageCounts) string {
	var b strings.Builder
	b.WriteString("\nStage counts:\n")
	for _, sc := range c.List() {
		b.WriteString(fmt.Sprintf("  %-26s %10s\n", sc.Stage, humanize.Comma(int64(sc.Count))))
	}
	return b.String()
}

// FormatSummary renders the per-sentiment means.
func FormatSummary(rows []model.SentimentSummary) string {
	var b strings.Builder
	b.WriteString("\nSentiment summary (mean per account-day):\n")
	b.WriteString(fmt.Sprintf("  %-6s %6s %14s %8s %12s %10s %10s\n",
		"class", "days", "daily_pnl", "trades", "trade_size", "win_rate", "buy_ratio"))
	for _, s := range rows {
		b.WriteString(fmt.Sprintf("  %-6s %6s %14s %8.2f %12s %10s %10s\n",
			s.Sentiment, humanize.Comma(int64(s.Days)), money(s.DailyPnL), s.NumTrades,
			money(s.AvgTradeSize), ratio(s.WinRate), ratio(s.BuyRatio)))
	}
	return b.String()
}

// FormatTests renders the rank tests with the Fear and Greed means.
func FormatTests(tests []model.RankTest) string {
	var b strings.Builder
	b.WriteString("\nMann-Whitney U (Fear vs Greed, two-sided):\n")
	for _, t := range tests {
		b.WriteString(fmt.Sprintf("  %-15s U=%-12s p=%-10.4g %-10s n=%d/%d  fear mean %s  greed mean %s\n",
			t.Metric, humanize.Ftoa(t.U), t.PValue, t.Method, t.FearN, t.GreedN,
			money(t.FearMean), money(t.GreedMean)))
	}
	return b.String()
}

// FormatInsights renders the key insights table.
func FormatInsights(rows []model.KeyInsight) string {
	var b strings.Builder
	b.WriteString("\nKey insights:\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-16s fear %14s  greed %14s  %10s  %s\n",
			r.Dimension, money(r.Fear), money(r.Greed), r.Difference, r.Significance))
	}
	return b.String()
}

// FormatFooter closes the console report.
func FormatFooter(outputDir string, finished time.Time, elapsed time.Duration) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("\nFiles saved in: %s\n", outputDir))
	b.WriteString(fmt.Sprintf("End: %s (%s)\n", finished.Format("2006-01-02 15:04:05"), elapsed.Round(time.Millisecond)))
	return b.String()
}

func money(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return humanize.FormatFloat("#,###.##", v)
}

func ratio(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}
