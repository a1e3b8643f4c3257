package aggregator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"TraderSentiment/internal/calculator"
	"TraderSentiment/internal/model"
)

// FrequentQuantile is the trade-count percentile at which an account counts as Frequent.
const FrequentQuantile = 0.75

// WinnerMinWinRate is the win rate a profitable account must exceed to be a Consistent Winner.
const WinnerMinWinRate = 0.5

// Profiles builds one lifetime profile per account over all aligned trades,
// regardless of sentiment, and assigns segments. Output is ordered by account.
func Profiles(aligned []model.AlignedTrade) ([]model.TraderProfile, model.Thresholds, error) {
	byAccount := make(map[string][]model.AlignedTrade)
	for _, t := range aligned {
		byAccount[t.Account] = append(byAccount[t.Account], t)
	}

	profiles := make([]model.TraderProfile, 0, len(byAccount))
	for account, trades := range byAccount {
		pnl := make([]float64, len(trades))
		size := make([]float64, len(trades))
		var total, fees decimal.Decimal
		for i, t := range trades {
			pnl[i] = t.ClosedPnL.InexactFloat64()
			size[i] = t.SizeUSD.InexactFloat64()
			total = total.Add(t.ClosedPnL)
			fees = fees.Add(t.Fee)
		}
		profiles = append(profiles, model.TraderProfile{
			Account:      account,
			TotalPnL:     total,
			AvgPnL:       calculator.Mean(pnl),
			PnLStd:       calculator.SampleStdDev(pnl),
			AvgTradeSize: calculator.Mean(size),
			TotalFees:    fees,
			NumTrades:    len(trades),
			WinRate:      calculator.Fraction(pnl, func(v float64) bool { return v > 0 }),
			NetProfit:    total.Sub(fees),
		})
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Account < profiles[j].Account })

	return Segment(profiles)
}

// Segment computes the population thresholds from profiles and returns a copy
// with the three segment labels assigned. Thresholds depend on the population
// passed in, so adding or removing accounts can move every boundary.
func Segment(profiles []model.TraderProfile) ([]model.TraderProfile, model.Thresholds, error) {
	var th model.Thresholds
	if len(profiles) == 0 {
		return nil, th, fmt.Errorf("segment: no trader profiles")
	}

	sizes := make([]float64, len(profiles))
	counts := make([]float64, len(profiles))
	for i, p := range profiles {
		sizes[i] = p.AvgTradeSize
		counts[i] = float64(p.NumTrades)
	}
	var err error
	if th.MedianTradeSize, err = calculator.Median(sizes); err != nil {
		return nil, th, fmt.Errorf("volume threshold: %w", err)
	}
	if th.FrequentTradesAt, err = calculator.Quantile(counts, FrequentQuantile); err != nil {
		return nil, th, fmt.Errorf("frequency threshold: %w", err)
	}

	out := make([]model.TraderProfile, len(profiles))
	for i, p := range profiles {
		p.VolumeSegment = volumeSegment(p, th)
		p.FrequencySegment = frequencySegment(p, th)
		p.PerformanceSegment = performanceSegment(p)
		out[i] = p
	}
	return out, th, nil
}

func volumeSegment(p model.TraderProfile, th model.Thresholds) string {
	if p.AvgTradeSize >= th.MedianTradeSize {
		return model.HighVolume
	}
	return model.LowVolume
}

func frequencySegment(p model.TraderProfile, th model.Thresholds) string {
	if float64(p.NumTrades) >= th.FrequentTradesAt {
		return model.Frequent
	}
	return model.Infrequent
}

func performanceSegment(p model.TraderProfile) string {
	if p.NetProfit.IsPositive() && p.WinRate > WinnerMinWinRate {
		return model.ConsistentWinner
	}
	return model.Inconsistent
}
