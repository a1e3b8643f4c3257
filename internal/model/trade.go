package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeSide is the direction of an execution as found in the log.
type TradeSide string

const (
	SideBuy  TradeSide = "BUY"
	SideSell TradeSide = "SELL"
)

// TradeRecord is a typed row of the execution log.
type TradeRecord struct {
	Row       int
	Account   string
	Coin      string
	Side      TradeSide
	Timestamp *time.Time // nil when the timestamp could not be parsed
	TradeDate *time.Time // Timestamp truncated to the day, nil with it
	ClosedPnL decimal.Decimal
	SizeUSD   decimal.Decimal
	Fee       decimal.Decimal
}

// AlignedTrade is a trade whose day carries a Fear or Greed label.
type AlignedTrade struct {
	TradeRecord
	Sentiment SentimentClass
}

// Day returns the trade date; only valid on aligned trades.
func (a AlignedTrade) Day() time.Time {
	return *a.TradeDate
}
