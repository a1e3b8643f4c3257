package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"TraderSentiment/internal/aggregator"
	"TraderSentiment/internal/collector"
	"TraderSentiment/internal/insights"
	"TraderSentiment/internal/logger"
	"TraderSentiment/internal/metrics"
	"TraderSentiment/internal/model"
	"TraderSentiment/internal/recorder"
	"TraderSentiment/internal/report"
)

// Result holds every table produced by one run.
type Result struct {
	RunID      string
	Counts     model.StageCounts
	Daily      []model.DailyMetric
	Summary    []model.SentimentSummary
	Profiles   []model.TraderProfile
	Thresholds model.Thresholds
	Tests      []model.RankTest
	Insights   []model.KeyInsight
}

// Runner executes the batch once: collect, align, aggregate, segment, test, export.
type Runner struct {
	RunID       string
	Collector   *collector.Collector
	Recorder    recorder.Recorder
	Stages      *metrics.Stages
	Alpha       float64
	MetricsFile string    // written after the run when set
	Report      io.Writer // console report, skipped when nil
	OutputDir   string    // shown in the report footer

	log zerolog.Logger
}

// NewRunner creates a Runner with the default alpha and fresh stage metrics.
func NewRunner(runID string, col *collector.Collector, rec recorder.Recorder) *Runner {
	return &Runner{
		RunID:     runID,
		Collector: col,
		Recorder:  rec,
		Stages:    metrics.NewStages(),
		Alpha:     insights.DefaultAlpha,
	}
}

// Run executes every stage in order. On ErrEmptySample the descriptive tables
// are already exported and the partial Result is returned with the error.
func (r *Runner) Run(ctx context.Context) (res *Result, err error) {
	r.log = logger.WithRun(r.RunID)
	started := time.Now()
	res = &Result{RunID: r.RunID}
	r.log.Info().Time("start", started).Msg("analysis started")
	r.print(report.FormatHeader(r.RunID, started))

	defer func() {
		finished := time.Now()
		if r.Stages != nil {
			r.Stages.Observe(res.Counts)
			r.Stages.Finish(finished, err)
			if r.MetricsFile != "" {
				if werr := r.Stages.WriteFile(r.MetricsFile); werr != nil {
					r.log.Warn().Err(werr).Msg("write metrics file failed")
				}
			}
		}
		ev := r.log.Info()
		if err != nil {
			ev = r.log.Error().Err(err)
		}
		ev.Time("end", finished).Dur("elapsed", finished.Sub(started)).Msg("analysis finished")
	}()

	if err := r.analyze(ctx, res); err != nil {
		return res, err
	}
	if err := r.export(ctx, res); err != nil {
		return res, err
	}
	if err := r.test(ctx, res); err != nil {
		return res, err
	}

	r.print(report.FormatStageCounts(res.Counts))
	r.print(report.FormatSummary(res.Summary))
	r.print(report.FormatTests(res.Tests))
	r.print(report.FormatInsights(res.Insights))
	finished := time.Now()
	r.print(report.FormatFooter(r.OutputDir, finished, finished.Sub(started)))
	return res, nil
}

func (r *Runner) analyze(ctx context.Context, res *Result) error {
	start := time.Now()
	ds, err := r.Collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("collect: %w", err)
	}
	r.timed("collect", start)

	c := &res.Counts
	c.SentimentRows = ds.SentimentStats.Rows
	c.SentimentNoLabel = ds.SentimentStats.NoLabel
	c.SentimentFear = ds.SentimentStats.ByClass[model.Fear]
	c.SentimentGreed = ds.SentimentStats.ByClass[model.Greed]
	c.SentimentNeutral = ds.SentimentStats.ByClass[model.Neutral]
	c.TradeRows = ds.TradeStats.Rows
	c.NullTimestamps = ds.TradeStats.NullTimestamps
	c.CoercedAmounts = ds.TradeStats.CoercedAmounts

	if err := ctx.Err(); err != nil {
		return err
	}
	start = time.Now()
	aligned, as, err := aggregator.Align(ds.Trades, ds.Sentiment)
	c.SentimentDuplicate = as.DuplicateDays
	c.UnmatchedTrades = as.Unmatched
	c.NeutralTrades = as.Neutral
	c.AlignedFear = as.ByClass[model.Fear]
	c.AlignedGreed = as.ByClass[model.Greed]
	if err != nil {
		return fmt.Errorf("align %d trades with %d sentiment days: %w", len(ds.Trades), len(ds.Sentiment), err)
	}
	r.timed("align", start)
	r.log.Info().
		Int("rows", len(aligned)).
		Int("fear", c.AlignedFear).
		Int("greed", c.AlignedGreed).
		Int("unmatched", as.Unmatched).
		Int("neutral", as.Neutral).
		Int("null_date", as.NullDate).
		Msg("trades aligned")

	if err := ctx.Err(); err != nil {
		return err
	}
	start = time.Now()
	res.Daily = aggregator.DailyMetrics(aligned)
	res.Summary = aggregator.Summarize(res.Daily)
	c.DailyRows = len(res.Daily)
	r.timed("aggregate", start)
	r.log.Info().Int("rows", len(res.Daily)).Msg("daily metrics built")

	start = time.Now()
	res.Profiles, res.Thresholds, err = aggregator.Profiles(aligned)
	if err != nil {
		return fmt.Errorf("segment: %w", err)
	}
	c.Accounts = len(res.Profiles)
	r.timed("segment", start)
	r.log.Info().
		Int("accounts", len(res.Profiles)).
		Float64("median_trade_size", res.Thresholds.MedianTradeSize).
		Float64("frequent_at", res.Thresholds.FrequentTradesAt).
		Msg("traders segmented")
	return nil
}

func (r *Runner) export(ctx context.Context, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	if err := r.Recorder.RecordDaily(res.Daily); err != nil {
		return fmt.Errorf("export daily metrics: %w", err)
	}
	if err := r.Recorder.RecordSummary(res.Summary); err != nil {
		return fmt.Errorf("export summary: %w", err)
	}
	if err := r.Recorder.RecordProfiles(res.Profiles); err != nil {
		return fmt.Errorf("export profiles: %w", err)
	}
	r.timed("export", start)
	return nil
}

func (r *Runner) test(ctx context.Context, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	tests, err := insights.TestAll(res.Daily, r.Alpha)
	if err != nil {
		if errors.Is(err, model.ErrEmptySample) {
			r.print(report.FormatStageCounts(res.Counts))
		}
		return fmt.Errorf("significance: %w", err)
	}
	res.Tests = tests
	res.Insights = insights.KeyInsights(tests, r.Alpha)
	r.timed("test", start)
	for _, t := range tests {
		r.log.Info().
			Str("metric", t.Metric).
			Float64("u", t.U).
			Float64("p_value", t.PValue).
			Str("method", t.Method).
			Float64("fear_mean", t.FearMean).
			Float64("greed_mean", t.GreedMean).
			Msg("mann-whitney u")
	}

	if err := r.Recorder.RecordTests(res.Tests); err != nil {
		return fmt.Errorf("export tests: %w", err)
	}
	if err := r.Recorder.RecordInsights(res.Insights); err != nil {
		return fmt.Errorf("export insights: %w", err)
	}
	return nil
}

func (r *Runner) timed(stage string, start time.Time) {
	if r.Stages != nil {
		r.Stages.Time(stage, start)
	}
}

func (r *Runner) print(s string) {
	if r.Report != nil {
		io.WriteString(r.Report, s)
	}
}
