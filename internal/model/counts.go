package model

// StageCounts records how many rows each stage saw, so silent row-level
// degradations stay observable in aggregate.
type StageCounts struct {
	SentimentRows      int
	SentimentNoLabel   int
	SentimentDuplicate int
	SentimentFear      int
	SentimentGreed     int
	SentimentNeutral   int
	TradeRows          int
	NullTimestamps     int
	CoercedAmounts     int
	UnmatchedTrades    int
	NeutralTrades      int
	AlignedFear        int
	AlignedGreed       int
	DailyRows          int
	Accounts           int
}

// StageCount is a single named counter.
type StageCount struct {
	Stage string
	Count int
}

// List returns the counters in pipeline order.
func (c StageCounts) List() []StageCount {
	return []StageCount{
		{"sentiment_rows", c.SentimentRows},
		{"sentiment_missing_label", c.SentimentNoLabel},
		{"sentiment_duplicate_days", c.SentimentDuplicate},
		{"sentiment_fear", c.SentimentFear},
		{"sentiment_greed", c.SentimentGreed},
		{"sentiment_neutral", c.SentimentNeutral},
		{"trade_rows", c.TradeRows},
		{"trade_null_timestamps", c.NullTimestamps},
		{"trade_coerced_amounts", c.CoercedAmounts},
		{"trades_unmatched", c.UnmatchedTrades},
		{"trades_neutral", c.NeutralTrades},
		{"aligned_fear", c.AlignedFear},
		{"aligned_greed", c.AlignedGreed},
		{"daily_rows", c.DailyRows},
		{"accounts", c.Accounts},
	}
}
