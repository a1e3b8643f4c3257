package aggregator

import (
	"TraderSentiment/internal/calculator"
	"TraderSentiment/internal/model"
)

// Summarize averages every numeric DailyMetric column per sentiment class.
// Classes without rows are omitted; nil ratios are skipped in the mean.
func Summarize(daily []model.DailyMetric) []model.SentimentSummary {
	byClass := make(map[model.SentimentClass][]model.DailyMetric)
	for _, d := range daily {
		byClass[d.Sentiment] = append(byClass[d.Sentiment], d)
	}

	var out []model.SentimentSummary
	for _, class := range model.Classes {
		rows := byClass[class]
		if len(rows) == 0 {
			continue
		}
		col := func(f func(model.DailyMetric) float64) float64 {
			vals := make([]float64, len(rows))
			for i, r := range rows {
				vals[i] = f(r)
			}
			return calculator.Mean(vals)
		}
		out = append(out, model.SentimentSummary{
			Sentiment:      class,
			Days:           len(rows),
			DailyPnL:       col(func(d model.DailyMetric) float64 { return d.DailyPnL.InexactFloat64() }),
			AvgPnLPerTrade: col(func(d model.DailyMetric) float64 { return d.AvgPnLPerTrade }),
			PnLVolatility:  col(func(d model.DailyMetric) float64 { return d.PnLVolatility }),
			NumTrades:      col(func(d model.DailyMetric) float64 { return float64(d.NumTrades) }),
			TotalVolume:    col(func(d model.DailyMetric) float64 { return d.TotalVolume.InexactFloat64() }),
			AvgTradeSize:   col(func(d model.DailyMetric) float64 { return d.AvgTradeSize }),
			TotalFees:      col(func(d model.DailyMetric) float64 { return d.TotalFees.InexactFloat64() }),
			BuyRatio:       meanOfPresent(rows, func(d model.DailyMetric) *float64 { return d.BuyRatio }),
			WinRate:        meanOfPresent(rows, func(d model.DailyMetric) *float64 { return d.WinRate }),
			NetPnL:         col(func(d model.DailyMetric) float64 { return d.NetPnL.InexactFloat64() }),
		})
	}
	return out
}

func meanOfPresent(rows []model.DailyMetric, f func(model.DailyMetric) *float64) *float64 {
	var vals []float64
	for _, r := range rows {
		if v := f(r); v != nil {
			vals = append(vals, *v)
		}
	}
	if len(vals) == 0 {
		return nil
	}
	m := calculator.Mean(vals)
	return &m
}
