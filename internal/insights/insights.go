package insights

import (
	"fmt"
	"math"

	"TraderSentiment/internal/model"
)

var dimensions = []struct {
	name   string
	metric string
}{
	{"PnL", MetricDailyPnL},
	{"Win Rate", MetricWinRate},
	{"Trade Frequency", MetricNumTrades},
	{"Position Size", MetricAvgTradeSize},
}

// KeyInsights turns rank tests into the fixed four-row Fear vs Greed table.
// A dimension whose test is missing is reported with NaN values.
func KeyInsights(tests []model.RankTest, alpha float64) []model.KeyInsight {
	byMetric := make(map[string]model.RankTest, len(tests))
	for _, t := range tests {
		byMetric[t.Metric] = t
	}

	out := make([]model.KeyInsight, 0, len(dimensions))
	for _, d := range dimensions {
		t, ok := byMetric[d.metric]
		if !ok {
			out = append(out, model.KeyInsight{
				Dimension:    d.name,
				Fear:         math.NaN(),
				Greed:        math.NaN(),
				Difference:   "n/a",
				PValue:       math.NaN(),
				Significance: NotSignificant,
			})
			continue
		}
		out = append(out, model.KeyInsight{
			Dimension:    d.name,
			Fear:         t.FearMean,
			Greed:        t.GreedMean,
			Difference:   Difference(t.FearMean, t.GreedMean),
			PValue:       t.PValue,
			Significance: Tag(t.PValue, alpha),
		})
	}
	return out
}

// NotSignificant is the tag for p-values at or above alpha.
const NotSignificant = "Not Significant"

// Tag labels a p-value against alpha.
func Tag(p, alpha float64) string {
	if p < alpha {
		return fmt.Sprintf("Significant (p<%g)", alpha)
	}
	return NotSignificant
}

// Difference formats Greed minus Fear relative to |Fear|, or as an absolute
// change when Fear is zero.
func Difference(fear, greed float64) string {
	diff := greed - fear
	if fear == 0 {
		return fmt.Sprintf("%+.2f", diff)
	}
	return fmt.Sprintf("%+.1f%%", diff/math.Abs(fear)*100)
}
