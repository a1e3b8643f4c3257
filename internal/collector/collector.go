package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"TraderSentiment/internal/classifier"
	"TraderSentiment/internal/model"
	"TraderSentiment/internal/normalizer"
)

// Dataset is the cleaned input of one run.
type Dataset struct {
	Sentiment      []model.SentimentRecord
	Trades         []model.TradeRecord
	SentimentStats classifier.Stats
	TradeStats     normalizer.Stats
}

// Collector loads both tables from a Source and cleans them.
type Collector struct {
	Source Source
}

// NewCollector creates a new Collector.
func NewCollector(source Source) *Collector {
	return &Collector{Source: source}
}

// Collect loads, classifies and normalizes. Schema and date errors are fatal;
// row-level problems are only counted.
func (c *Collector) Collect(ctx context.Context) (*Dataset, error) {
	rawSent, err := c.Source.LoadSentiment(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sentiment: %w", err)
	}
	sent, sentStats, err := classifier.ClassifyTable(rawSent)
	if err != nil {
		return nil, fmt.Errorf("classify sentiment: %w", err)
	}
	log.Info().
		Str("source", c.Source.Name()).
		Int("rows", sentStats.Rows).
		Int("columns", len(rawSent.Header)).
		Int("missing_label", sentStats.NoLabel).
		Str("from", day(sentStats.FirstDate)).
		Str("to", day(sentStats.LastDate)).
		Int("fear", sentStats.ByClass[model.Fear]).
		Int("greed", sentStats.ByClass[model.Greed]).
		Int("neutral", sentStats.ByClass[model.Neutral]).
		Msg("sentiment loaded")

	rawTrades, err := c.Source.LoadTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}
	trades, tradeStats, err := normalizer.NormalizeTable(rawTrades)
	if err != nil {
		return nil, fmt.Errorf("normalize trades: %w", err)
	}
	log.Info().
		Str("source", c.Source.Name()).
		Int("rows", tradeStats.Rows).
		Int("columns", len(rawTrades.Header)).
		Int("null_timestamps", tradeStats.NullTimestamps).
		Int("coerced_amounts", tradeStats.CoercedAmounts).
		Int("traders", tradeStats.Accounts).
		Str("from", day(tradeStats.FirstDate)).
		Str("to", day(tradeStats.LastDate)).
		Msg("trades loaded")

	return &Dataset{
		Sentiment:      sent,
		Trades:         trades,
		SentimentStats: sentStats,
		TradeStats:     tradeStats,
	}, nil
}

func day(t time.Time) string {
	return t.Format("2006-01-02")
}
