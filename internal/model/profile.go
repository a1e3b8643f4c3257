package model

import "github.com/shopspring/decimal"

const (
	HighVolume = "High Volume"
	LowVolume  = "Low Volume"

	Frequent   = "Frequent"
	Infrequent = "Infrequent"

	ConsistentWinner = "Consistent Winner"
	Inconsistent     = "Inconsistent"
)

// TraderProfile summarizes every aligned trade of one account.
type TraderProfile struct {
	Account      string
	TotalPnL     decimal.Decimal
	AvgPnL       float64
	PnLStd       float64
	AvgTradeSize float64
	TotalFees    decimal.Decimal
	NumTrades    int
	WinRate      float64
	NetProfit    decimal.Decimal

	VolumeSegment      string
	FrequencySegment   string
	PerformanceSegment string
}

// Thresholds are the population-relative cut points used for segmentation.
type Thresholds struct {
	MedianTradeSize  float64
	FrequentTradesAt float64 // 75th percentile of trade counts
}
