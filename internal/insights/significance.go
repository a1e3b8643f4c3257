package insights

import (
	"errors"
	"fmt"

	"TraderSentiment/internal/calculator"
	"TraderSentiment/internal/model"
)

// DefaultAlpha is the reporting threshold; it never gates computation.
const DefaultAlpha = 0.05

// Tested metric names, in report order.
const (
	MetricDailyPnL     = "daily_pnl"
	MetricWinRate      = "win_rate"
	MetricNumTrades    = "num_trades"
	MetricAvgTradeSize = "avg_trade_size"
)

// Metrics lists every metric compared between Fear and Greed days.
var Metrics = []string{MetricDailyPnL, MetricWinRate, MetricNumTrades, MetricAvgTradeSize}

// Samples splits one daily metric into Fear and Greed samples.
// Rows where the metric is undefined (nil ratio) are left out.
func Samples(daily []model.DailyMetric, metric string) (fear, greed []float64, err error) {
	for _, d := range daily {
		v, ok, err := value(d, metric)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			continue
		}
		switch d.Sentiment {
		case model.Fear:
			fear = append(fear, v)
		case model.Greed:
			greed = append(greed, v)
		}
	}
	return fear, greed, nil
}

func value(d model.DailyMetric, metric string) (float64, bool, error) {
	switch metric {
	case MetricDailyPnL:
		return d.DailyPnL.InexactFloat64(), true, nil
	case MetricWinRate:
		if d.WinRate == nil {
			return 0, false, nil
		}
		return *d.WinRate, true, nil
	case MetricNumTrades:
		return float64(d.NumTrades), true, nil
	case MetricAvgTradeSize:
		return d.AvgTradeSize, true, nil
	}
	return 0, false, fmt.Errorf("unknown metric %q", metric)
}

// Compare runs the two-sided rank test for one metric, Fear sample first.
func Compare(daily []model.DailyMetric, metric string, alpha float64) (model.RankTest, error) {
	fear, greed, err := Samples(daily, metric)
	if err != nil {
		return model.RankTest{}, err
	}
	res, err := calculator.MannWhitneyU(fear, greed)
	if errors.Is(err, calculator.ErrEmptySample) {
		return model.RankTest{}, fmt.Errorf("%s: fear=%d greed=%d: %w", metric, len(fear), len(greed), model.ErrEmptySample)
	}
	if err != nil {
		return model.RankTest{}, fmt.Errorf("%s: %w", metric, err)
	}

	fearMedian, _ := calculator.Median(fear)
	greedMedian, _ := calculator.Median(greed)
	return model.RankTest{
		Metric:      metric,
		FearN:       len(fear),
		GreedN:      len(greed),
		FearMean:    calculator.Mean(fear),
		GreedMean:   calculator.Mean(greed),
		FearMedian:  fearMedian,
		GreedMedian: greedMedian,
		U:           res.U,
		PValue:      res.PValue,
		Method:      res.Method,
		Significant: res.PValue < alpha,
	}, nil
}

// TestAll compares every metric in Metrics. The first empty sample aborts the set.
func TestAll(daily []model.DailyMetric, alpha float64) ([]model.RankTest, error) {
	out := make([]model.RankTest, 0, len(Metrics))
	for _, m := range Metrics {
		t, err := Compare(daily, m, alpha)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
