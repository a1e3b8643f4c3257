package recorder

import "TraderSentiment/internal/model"

// NoopRecorder discards everything; used when no output is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordDaily(_ []model.DailyMetric) error        { return nil }
func (n *NoopRecorder) RecordSummary(_ []model.SentimentSummary) error { return nil }
func (n *NoopRecorder) RecordProfiles(_ []model.TraderProfile) error   { return nil }
func (n *NoopRecorder) RecordTests(_ []model.RankTest) error           { return nil }
func (n *NoopRecorder) RecordInsights(_ []model.KeyInsight) error      { return nil }
func (n *NoopRecorder) Close() error                                   { return nil }
