package aggregator

import (
	"time"

	"TraderSentiment/internal/model"
)

// AlignStats explains where non-aligned trades went.
type AlignStats struct {
	Trades        int
	NullDate      int
	Unmatched     int // trade date has no sentiment day
	Neutral       int // sentiment day is Neutral
	DuplicateDays int // repeated sentiment dates, first occurrence kept
	ByClass       map[model.SentimentClass]int
}

// Align inner-joins trades to sentiment days and keeps Fear and Greed only.
// Unmatched and Neutral days are excluded alike. An empty result means the two
// inputs do not overlap and is returned as model.ErrEmptyMerge.
func Align(trades []model.TradeRecord, sentiment []model.SentimentRecord) ([]model.AlignedTrade, AlignStats, error) {
	stats := AlignStats{Trades: len(trades), ByClass: make(map[model.SentimentClass]int)}

	days := make(map[time.Time]model.SentimentClass, len(sentiment))
	for _, s := range sentiment {
		if _, seen := days[s.Date]; seen {
			stats.DuplicateDays++
			continue
		}
		days[s.Date] = s.Class
	}

	aligned := make([]model.AlignedTrade, 0, len(trades))
	for _, t := range trades {
		if t.TradeDate == nil {
			stats.NullDate++
			continue
		}
		class, ok := days[*t.TradeDate]
		switch {
		case !ok:
			stats.Unmatched++
		case class == model.Neutral:
			stats.Neutral++
		default:
			stats.ByClass[class]++
			aligned = append(aligned, model.AlignedTrade{TradeRecord: t, Sentiment: class})
		}
	}

	if len(aligned) == 0 {
		return nil, stats, model.ErrEmptyMerge
	}
	return aligned, stats, nil
}
