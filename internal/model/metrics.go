package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyMetric summarizes one account's aligned trades on one day.
type DailyMetric struct {
	Account   string
	TradeDate time.Time
	Sentiment SentimentClass

	DailyPnL       decimal.Decimal
	AvgPnLPerTrade float64
	PnLVolatility  float64 // sample std-dev, 0 for a single trade
	NumTrades      int
	TotalVolume    decimal.Decimal
	AvgTradeSize   float64
	TotalFees      decimal.Decimal

	// nil when no (account, day) ratio row matched
	BuyRatio *float64
	WinRate  *float64

	NetPnL decimal.Decimal
}

// SentimentSummary holds the per-regime mean of every numeric DailyMetric column.
type SentimentSummary struct {
	Sentiment      SentimentClass
	Days           int
	DailyPnL       float64
	AvgPnLPerTrade float64
	PnLVolatility  float64
	NumTrades      float64
	TotalVolume    float64
	AvgTradeSize   float64
	TotalFees      float64
	BuyRatio       *float64
	WinRate        *float64
	NetPnL         float64
}
