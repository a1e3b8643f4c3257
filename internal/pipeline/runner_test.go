package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TraderSentiment/internal/collector"
	"TraderSentiment/internal/model"
	"TraderSentiment/internal/recorder"
)

var allFiles = []string{
	recorder.DailyFile,
	recorder.SummaryFile,
	recorder.ProfilesFile,
	recorder.TestsFile,
	recorder.InsightsFile,
}

func newRunner(t *testing.T, src collector.Source, dir string) *Runner {
	t.Helper()
	rec, err := recorder.NewCSVRecorder(dir)
	require.NoError(t, err)
	r := NewRunner("test-run", collector.NewCollector(src), rec)
	r.OutputDir = dir
	return r
}

func scenarioSource() *collector.MockSource {
	return &collector.MockSource{
		Sentiment: &model.RawTable{
			Source: "fear_greed_index.csv",
			Header: []string{"timestamp", "value", "classification", "date"},
			Rows: [][]string{
				{"1704067200", "25", "Extreme Fear", "2024-01-01"},
				{"1704153600", "75", "Extreme Greed", "2024-01-02"},
				{"1704240000", "50", "Neutral", "2024-01-03"},
			},
		},
		Trades: &model.RawTable{
			Source: "historical_data.csv",
			Header: []string{"Account", "Coin", "Side", "Timestamp IST", "Size USD", "Closed PnL", "Fee"},
			Rows: [][]string{
				{"A", "BTC", "BUY", "01-01-2024 10:00", "100", "10", "1"},
				{"A", "BTC", "SELL", "01-01-2024 12:00", "200", "-4", "1"},
				{"A", "ETH", "BUY", "02-01-2024 09:00", "300", "20", "0"},
				{"A", "ETH", "BUY", "03-01-2024 09:00", "300", "99", "0"},
				{"B", "SOL", "SELL", "01-01-2024 15:00", "50", "0", "0.5"},
				{"B", "SOL", "BUY", "02-01-2024 15:00", "60", "3", "0.5"},
				{"B", "SOL", "BUY", "not a time", "60", "3", "0.5"},
			},
		},
	}
}

func TestRunner_Scenario(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	r := newRunner(t, scenarioSource(), dir)
	r.Report = &out

	res, err := r.Run(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Daily, 4)
	a1 := res.Daily[0]
	assert.Equal(t, "A", a1.Account)
	assert.Equal(t, model.Fear, a1.Sentiment)
	assert.True(t, a1.DailyPnL.Equal(decimal.NewFromInt(6)))
	assert.Equal(t, 2, a1.NumTrades)
	assert.True(t, a1.TotalFees.Equal(decimal.NewFromInt(2)))
	assert.True(t, a1.NetPnL.Equal(decimal.NewFromInt(4)))
	assert.InDelta(t, 0.5, *a1.BuyRatio, 1e-9)
	assert.InDelta(t, 0.5, *a1.WinRate, 1e-9)

	a2 := res.Daily[1]
	assert.Equal(t, model.Greed, a2.Sentiment)
	assert.True(t, a2.DailyPnL.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, 1, a2.NumTrades)
	assert.Zero(t, a2.PnLVolatility)
	assert.InDelta(t, 1.0, *a2.BuyRatio, 1e-9)
	assert.InDelta(t, 1.0, *a2.WinRate, 1e-9)

	for _, d := range res.Daily {
		assert.NotEqual(t, model.Neutral, d.Sentiment)
	}

	assert.Equal(t, 7, res.Counts.TradeRows)
	assert.Equal(t, 1, res.Counts.NullTimestamps)
	assert.Equal(t, 1, res.Counts.NeutralTrades)
	assert.Equal(t, 3, res.Counts.AlignedFear)
	assert.Equal(t, 2, res.Counts.AlignedGreed)
	assert.Equal(t, 2, res.Counts.Accounts)

	require.Len(t, res.Summary, 2)
	require.Len(t, res.Tests, 4)
	require.Len(t, res.Insights, 4)

	for _, f := range allFiles {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, f)
	}
	assert.Contains(t, out.String(), "Key insights")
	assert.Contains(t, out.String(), "Files saved in")
}

func TestRunner_Idempotent(t *testing.T) {
	src := collector.NewMockSource(60, 5)
	first, second := t.TempDir(), t.TempDir()

	_, err := newRunner(t, src, first).Run(context.Background())
	require.NoError(t, err)
	_, err = newRunner(t, src, second).Run(context.Background())
	require.NoError(t, err)

	for _, f := range allFiles {
		a, err := os.ReadFile(filepath.Join(first, f))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(second, f))
		require.NoError(t, err)
		assert.Equal(t, a, b, f)
	}
}

func TestRunner_NoOverlap(t *testing.T) {
	src := scenarioSource()
	src.Sentiment.Rows = [][]string{{"1", "20", "Fear", "2020-06-01"}}

	dir := t.TempDir()
	_, err := newRunner(t, src, dir).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrEmptyMerge))
	assert.Contains(t, err.Error(), "empty after merge")

	_, statErr := os.Stat(filepath.Join(dir, recorder.DailyFile))
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "nothing is exported")
}

func TestRunner_EmptySampleStillExportsTables(t *testing.T) {
	src := scenarioSource()
	src.Sentiment.Rows = [][]string{
		{"1", "20", "Fear", "2023-12-31"},
		{"2", "75", "Greed", "2024-01-01"},
		{"3", "75", "Greed", "2024-01-02"},
	}

	dir := t.TempDir()
	res, err := newRunner(t, src, dir).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrEmptySample))
	require.NotNil(t, res)
	assert.NotEmpty(t, res.Daily)
	assert.Empty(t, res.Tests)

	for _, f := range []string{recorder.DailyFile, recorder.SummaryFile, recorder.ProfilesFile} {
		_, statErr := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, statErr, f)
	}
	_, statErr := os.Stat(filepath.Join(dir, recorder.InsightsFile))
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestRunner_SchemaErrorIsFatal(t *testing.T) {
	src := scenarioSource()
	src.Trades.Header = []string{"Account", "Coin", "Side", "Time", "Size USD", "Closed PnL", "Fee"}

	_, err := newRunner(t, src, t.TempDir()).Run(context.Background())
	var schemaErr *model.SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.Equal(t, "timestamp_ist", schemaErr.Column)
}

func TestRunner_MetricsFile(t *testing.T) {
	dir := t.TempDir()
	r := newRunner(t, scenarioSource(), dir)
	r.MetricsFile = filepath.Join(dir, "pipeline.prom")

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(r.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `analyzer_stage_rows{stage="aligned_fear"} 3`)
	assert.Contains(t, string(data), "analyzer_last_run_success 1")
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newRunner(t, scenarioSource(), t.TempDir()).Run(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}
