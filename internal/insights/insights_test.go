package insights

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TraderSentiment/internal/calculator"
	"TraderSentiment/internal/model"
)

func row(class model.SentimentClass, pnl int64, trades int, size float64, win *float64) model.DailyMetric {
	return model.DailyMetric{
		Sentiment:    class,
		DailyPnL:     decimal.NewFromInt(pnl),
		NumTrades:    trades,
		AvgTradeSize: size,
		WinRate:      win,
	}
}

func f(v float64) *float64 { return &v }

func sampleDaily() []model.DailyMetric {
	return []model.DailyMetric{
		row(model.Fear, 1, 1, 100, f(0.2)),
		row(model.Fear, 2, 2, 100, f(0.4)),
		row(model.Fear, 3, 3, 100, nil),
		row(model.Greed, 4, 4, 300, f(0.6)),
		row(model.Greed, 5, 5, 300, f(0.8)),
		row(model.Greed, 6, 6, 300, f(1.0)),
	}
}

func TestSamples(t *testing.T) {
	fear, greed, err := Samples(sampleDaily(), MetricWinRate)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, 0.4}, fear, "nil win rate is excluded")
	assert.Equal(t, []float64{0.6, 0.8, 1.0}, greed)

	_, _, err = Samples(sampleDaily(), "sharpe")
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	res, err := Compare(sampleDaily(), MetricDailyPnL, DefaultAlpha)
	require.NoError(t, err)
	assert.Equal(t, MetricDailyPnL, res.Metric)
	assert.Equal(t, 3, res.FearN)
	assert.Equal(t, 3, res.GreedN)
	assert.InDelta(t, 2.0, res.FearMean, 1e-9)
	assert.InDelta(t, 5.0, res.GreedMean, 1e-9)
	assert.InDelta(t, 2.0, res.FearMedian, 1e-9)
	assert.InDelta(t, 0.0, res.U, 1e-9)
	assert.InDelta(t, 0.1, res.PValue, 1e-9)
	assert.Equal(t, calculator.MethodExact, res.Method)
	assert.False(t, res.Significant)

	res, err = Compare(sampleDaily(), MetricDailyPnL, 0.2)
	require.NoError(t, err)
	assert.True(t, res.Significant, "alpha only changes the tag")
}

func TestCompare_EmptySample(t *testing.T) {
	daily := []model.DailyMetric{row(model.Greed, 1, 1, 1, f(1))}
	_, err := Compare(daily, MetricDailyPnL, DefaultAlpha)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrEmptySample))
	assert.Contains(t, err.Error(), "fear=0")
}

func TestTestAll(t *testing.T) {
	tests, err := TestAll(sampleDaily(), DefaultAlpha)
	require.NoError(t, err)
	require.Len(t, tests, len(Metrics))
	for i, m := range Metrics {
		assert.Equal(t, m, tests[i].Metric)
		assert.GreaterOrEqual(t, tests[i].PValue, 0.0)
		assert.LessOrEqual(t, tests[i].PValue, 1.0)
	}
	assert.Equal(t, 2, tests[1].FearN)
}

func TestKeyInsights(t *testing.T) {
	tests, err := TestAll(sampleDaily(), DefaultAlpha)
	require.NoError(t, err)

	rows := KeyInsights(tests, DefaultAlpha)
	require.Len(t, rows, 4)
	assert.Equal(t, "PnL", rows[0].Dimension)
	assert.Equal(t, "Win Rate", rows[1].Dimension)
	assert.Equal(t, "Trade Frequency", rows[2].Dimension)
	assert.Equal(t, "Position Size", rows[3].Dimension)

	assert.Equal(t, "+150.0%", rows[0].Difference)
	assert.Equal(t, "+200.0%", rows[3].Difference)
	assert.Equal(t, NotSignificant, rows[0].Significance)
}

func TestKeyInsights_MissingTestKeepsShape(t *testing.T) {
	rows := KeyInsights(nil, DefaultAlpha)
	require.Len(t, rows, 4)
	assert.True(t, math.IsNaN(rows[0].Fear))
	assert.Equal(t, "n/a", rows[0].Difference)
}

func TestDifference(t *testing.T) {
	tests := []struct {
		fear, greed float64
		want        string
	}{
		{100, 150, "+50.0%"},
		{100, 50, "-50.0%"},
		{-10, 5, "+150.0%"},
		{0, 2.5, "+2.50"},
		{0, 0, "+0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Difference(tt.fear, tt.greed), "fear=%v greed=%v", tt.fear, tt.greed)
	}
}

func TestTag(t *testing.T) {
	assert.Equal(t, "Significant (p<0.05)", Tag(0.01, 0.05))
	assert.Equal(t, NotSignificant, Tag(0.05, 0.05))
}
