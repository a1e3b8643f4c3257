package aggregator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"TraderSentiment/internal/calculator"
	"TraderSentiment/internal/model"
)

type dayKey struct {
	account string
	day     time.Time
}

type groupKey struct {
	dayKey
	sentiment model.SentimentClass
}

type group struct {
	key     groupKey
	pnl     []float64
	size    []float64
	pnlSum  decimal.Decimal
	sizeSum decimal.Decimal
	feeSum  decimal.Decimal
}

type ratios struct {
	buyRatio float64
	winRate  float64
}

// DailyMetrics groups aligned trades by (account, day, sentiment) and attaches
// buy ratio and win rate computed per (account, day). Rows are ordered by
// account, then day, then sentiment.
func DailyMetrics(aligned []model.AlignedTrade) []model.DailyMetric {
	groups := make(map[groupKey]*group)
	for _, t := range aligned {
		k := groupKey{dayKey{t.Account, t.Day()}, t.Sentiment}
		g, ok := groups[k]
		if !ok {
			g = &group{key: k}
			groups[k] = g
		}
		g.pnl = append(g.pnl, t.ClosedPnL.InexactFloat64())
		g.size = append(g.size, t.SizeUSD.InexactFloat64())
		g.pnlSum = g.pnlSum.Add(t.ClosedPnL)
		g.sizeSum = g.sizeSum.Add(t.SizeUSD)
		g.feeSum = g.feeSum.Add(t.Fee)
	}

	perDay := dayRatios(aligned)

	rows := make([]model.DailyMetric, 0, len(groups))
	for _, g := range groups {
		m := model.DailyMetric{
			Account:        g.key.account,
			TradeDate:      g.key.day,
			Sentiment:      g.key.sentiment,
			DailyPnL:       g.pnlSum,
			AvgPnLPerTrade: calculator.Mean(g.pnl),
			PnLVolatility:  calculator.SampleStdDev(g.pnl),
			NumTrades:      len(g.pnl),
			TotalVolume:    g.sizeSum,
			AvgTradeSize:   calculator.Mean(g.size),
			TotalFees:      g.feeSum,
			NetPnL:         g.pnlSum.Sub(g.feeSum),
		}
		if r, ok := perDay[g.key.dayKey]; ok {
			buy, win := r.buyRatio, r.winRate
			m.BuyRatio = &buy
			m.WinRate = &win
		}
		rows = append(rows, m)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Account != b.Account {
			return a.Account < b.Account
		}
		if !a.TradeDate.Equal(b.TradeDate) {
			return a.TradeDate.Before(b.TradeDate)
		}
		return a.Sentiment < b.Sentiment
	})
	return rows
}

// dayRatios is computed independently of the sentiment grouping; a day maps to
// a single sentiment after alignment, so the join is one-to-one.
func dayRatios(aligned []model.AlignedTrade) map[dayKey]ratios {
	byDay := make(map[dayKey][]model.AlignedTrade)
	for _, t := range aligned {
		k := dayKey{t.Account, t.Day()}
		byDay[k] = append(byDay[k], t)
	}
	out := make(map[dayKey]ratios, len(byDay))
	for k, trades := range byDay {
		out[k] = ratios{
			buyRatio: calculator.Fraction(trades, func(t model.AlignedTrade) bool { return t.Side == model.SideBuy }),
			winRate:  calculator.Fraction(trades, func(t model.AlignedTrade) bool { return t.ClosedPnL.IsPositive() }),
		}
	}
	return out
}
