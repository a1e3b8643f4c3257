package normalizer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"TraderSentiment/internal/model"
)

// Column names after normalization.
const (
	ColTimestamp = "timestamp_ist"
	ColAccount   = "account"
	ColClosedPnL = "closed_pnl"
	ColSizeUSD   = "size_usd"
	ColFee       = "fee"
	ColSide      = "side"
	ColCoin      = "coin"
)

// TimestampLayout is day-month-year hour:minute; single-digit fields are accepted.
const TimestampLayout = "2-1-2006 15:4"

// Stats counts degradations applied while normalizing one trade table.
type Stats struct {
	Rows           int
	NullTimestamps int
	CoercedAmounts int // non-empty money cells that were not numeric
	Accounts       int
	FirstDate      time.Time
	LastDate       time.Time
}

// ParseTimestamp returns nil when s does not match TimestampLayout.
func ParseTimestamp(s string) *time.Time {
	t, err := time.Parse(TimestampLayout, strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &t
}

// TruncateDay returns UTC midnight of t's calendar day, nil for nil.
func TruncateDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &day
}

// ParseAmount coerces a money cell. Empty or non-numeric cells become zero;
// coerced reports whether a non-empty cell was discarded.
func ParseAmount(s string) (v decimal.Decimal, coerced bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true
	}
	return v, false
}

// NormalizeSide keeps the side verbatim. Only an exact "BUY" counts as a buy;
// "buy" or " BUY" are other sides.
func NormalizeSide(s string) model.TradeSide {
	return model.TradeSide(s)
}

// NormalizeTable converts every row of a trade log. A missing timestamp or
// account column aborts; everything else degrades per row.
func NormalizeTable(t *model.RawTable) ([]model.TradeRecord, Stats, error) {
	var stats Stats
	idx, err := t.Require(ColTimestamp, ColAccount)
	if err != nil {
		return nil, stats, err
	}
	col := func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}
	pnlAt, sizeAt, feeAt := col(ColClosedPnL), col(ColSizeUSD), col(ColFee)
	sideAt, coinAt := col(ColSide), col(ColCoin)

	accounts := make(map[string]struct{})
	trades := make([]model.TradeRecord, 0, len(t.Rows))
	for i, row := range t.Rows {
		stats.Rows++
		ts := ParseTimestamp(model.Cell(row, idx[ColTimestamp]))
		if ts == nil {
			stats.NullTimestamps++
		}
		pnl, c1 := ParseAmount(model.Cell(row, pnlAt))
		size, c2 := ParseAmount(model.Cell(row, sizeAt))
		fee, c3 := ParseAmount(model.Cell(row, feeAt))
		for _, c := range []bool{c1, c2, c3} {
			if c {
				stats.CoercedAmounts++
			}
		}

		rec := model.TradeRecord{
			Row:       i + 1,
			Account:   strings.TrimSpace(model.Cell(row, idx[ColAccount])),
			Coin:      strings.TrimSpace(model.Cell(row, coinAt)),
			Side:      NormalizeSide(model.Cell(row, sideAt)),
			Timestamp: ts,
			TradeDate: TruncateDay(ts),
			ClosedPnL: pnl,
			SizeUSD:   size,
			Fee:       fee,
		}
		accounts[rec.Account] = struct{}{}
		if d := rec.TradeDate; d != nil {
			if stats.FirstDate.IsZero() || d.Before(stats.FirstDate) {
				stats.FirstDate = *d
			}
			if d.After(stats.LastDate) {
				stats.LastDate = *d
			}
		}
		trades = append(trades, rec)
	}
	stats.Accounts = len(accounts)
	return trades, stats, nil
}
