package collector

import (
	"context"
	"fmt"
	"time"

	"TraderSentiment/internal/model"
)

// MockSource returns fixed in-memory tables for development and testing.
type MockSource struct {
	Sentiment *model.RawTable
	Trades    *model.RawTable
}

// NewMockSource builds a deterministic sample covering days of both regimes
// for a handful of accounts.
func NewMockSource(days, accounts int) *MockSource {
	return &MockSource{
		Sentiment: generateSentiment(days),
		Trades:    generateTrades(days, accounts),
	}
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) LoadSentiment(ctx context.Context) (*model.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.Sentiment, nil
}

func (m *MockSource) LoadTrades(ctx context.Context) (*model.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.Trades, nil
}

var mockStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

var mockLabels = []struct {
	label string
	value int
}{
	{"Extreme Fear", 12},
	{"Fear", 38},
	{"Neutral", 50},
	{"Greed", 64},
	{"Extreme Greed", 81},
}

func generateSentiment(days int) *model.RawTable {
	t := &model.RawTable{
		Source: "mock_sentiment",
		Header: []string{"timestamp", "value", "classification", "date"},
	}
	for i := 0; i < days; i++ {
		d := mockStart.AddDate(0, 0, i)
		l := mockLabels[(i*3)%len(mockLabels)]
		t.Rows = append(t.Rows, []string{
			fmt.Sprint(d.Unix()),
			fmt.Sprint(l.value),
			l.label,
			d.Format("2006-01-02"),
		})
	}
	return t
}

func generateTrades(days, accounts int) *model.RawTable {
	t := &model.RawTable{
		Source: "mock_trades",
		Header: []string{"Account", "Coin", "Execution Price", "Size USD", "Side", "Timestamp IST", "Closed PnL", "Fee"},
	}
	coins := []string{"BTC", "ETH", "SOL"}
	for a := 0; a < accounts; a++ {
		account := fmt.Sprintf("0x%040x", a+1)
		for i := 0; i < days; i++ {
			n := 1 + (a+i)%3
			for k := 0; k < n; k++ {
				ts := mockStart.AddDate(0, 0, i).Add(time.Duration(9+k*2)*time.Hour + time.Duration(a*7)*time.Minute)
				side := "BUY"
				if (a+i+k)%2 == 1 {
					side = "SELL"
				}
				pnl := float64((a+1)*((i*7+k*13)%21-8)) * 1.25
				size := float64(100*(a+1) + 25*k + 10*(i%5))
				t.Rows = append(t.Rows, []string{
					account,
					coins[(a+k)%len(coins)],
					"100.0",
					fmt.Sprintf("%.2f", size),
					side,
					ts.Format("02-01-2006 15:04"),
					fmt.Sprintf("%.2f", pnl),
					fmt.Sprintf("%.4f", size*0.00035),
				})
			}
		}
	}
	return t
}
