package recorder

import (
	"errors"

	"TraderSentiment/internal/model"
)

// Output file names, one per exported table.
const (
	DailyFile    = "daily_trader_metrics.csv"
	SummaryFile  = "sentiment_summary.csv"
	ProfilesFile = "trader_profiles.csv"
	TestsFile    = "significance_tests.csv"
	InsightsFile = "key_insights.csv"
)

// Recorder persists the analysis tables.
type Recorder interface {
	RecordDaily(rows []model.DailyMetric) error
	RecordSummary(rows []model.SentimentSummary) error
	RecordProfiles(rows []model.TraderProfile) error
	RecordTests(rows []model.RankTest) error
	RecordInsights(rows []model.KeyInsight) error
	Close() error
}

// Multi fans every call out to all recorders and joins their errors.
type Multi []Recorder

func (m Multi) each(fn func(Recorder) error) error {
	var errs []error
	for _, r := range m {
		if err := fn(r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) RecordDaily(rows []model.DailyMetric) error {
	return m.each(func(r Recorder) error { return r.RecordDaily(rows) })
}

func (m Multi) RecordSummary(rows []model.SentimentSummary) error {
	return m.each(func(r Recorder) error { return r.RecordSummary(rows) })
}

func (m Multi) RecordProfiles(rows []model.TraderProfile) error {
	return m.each(func(r Recorder) error { return r.RecordProfiles(rows) })
}

func (m Multi) RecordTests(rows []model.RankTest) error {
	return m.each(func(r Recorder) error { return r.RecordTests(rows) })
}

func (m Multi) RecordInsights(rows []model.KeyInsight) error {
	return m.each(func(r Recorder) error { return r.RecordInsights(rows) })
}

func (m Multi) Close() error {
	return m.each(func(r Recorder) error { return r.Close() })
}
