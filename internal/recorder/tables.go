package recorder

import (
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"TraderSentiment/internal/model"
)

const dateLayout = "2006-01-02"

type column struct {
	name    string
	sqlType string
}

// table is the storage-neutral shape of one exported table.
type table struct {
	name    string
	file    string
	columns []column
	rows    [][]any
}

func (t table) header() []string {
	out := make([]string, len(t.columns))
	for i, c := range t.columns {
		out[i] = c.name
	}
	return out
}

func dailyTable(rows []model.DailyMetric) table {
	t := table{
		name: "daily_trader_metrics",
		file: DailyFile,
		columns: []column{
			{"account", "TEXT"},
			{"trade_date", "TEXT"},
			{"sentiment", "TEXT"},
			{"daily_pnl", "REAL"},
			{"avg_pnl_per_trade", "REAL"},
			{"pnl_volatility", "REAL"},
			{"num_trades", "INTEGER"},
			{"total_volume", "REAL"},
			{"avg_trade_size", "REAL"},
			{"total_fees", "REAL"},
			{"buy_ratio", "REAL"},
			{"win_rate", "REAL"},
			{"net_pnl", "REAL"},
		},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{
			r.Account, r.TradeDate, string(r.Sentiment),
			r.DailyPnL, r.AvgPnLPerTrade, r.PnLVolatility, r.NumTrades,
			r.TotalVolume, r.AvgTradeSize, r.TotalFees,
			r.BuyRatio, r.WinRate, r.NetPnL,
		})
	}
	return t
}

func summaryTable(rows []model.SentimentSummary) table {
	t := table{
		name: "sentiment_summary",
		file: SummaryFile,
		columns: []column{
			{"sentiment", "TEXT"},
			{"days", "INTEGER"},
			{"daily_pnl", "REAL"},
			{"avg_pnl_per_trade", "REAL"},
			{"pnl_volatility", "REAL"},
			{"num_trades", "REAL"},
			{"total_volume", "REAL"},
			{"avg_trade_size", "REAL"},
			{"total_fees", "REAL"},
			{"buy_ratio", "REAL"},
			{"win_rate", "REAL"},
			{"net_pnl", "REAL"},
		},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{
			string(r.Sentiment), r.Days,
			r.DailyPnL, r.AvgPnLPerTrade, r.PnLVolatility, r.NumTrades,
			r.TotalVolume, r.AvgTradeSize, r.TotalFees,
			r.BuyRatio, r.WinRate, r.NetPnL,
		})
	}
	return t
}

func profilesTable(rows []model.TraderProfile) table {
	t := table{
		name: "trader_profiles",
		file: ProfilesFile,
		columns: []column{
			{"account", "TEXT"},
			{"total_pnl", "REAL"},
			{"avg_pnl", "REAL"},
			{"pnl_std", "REAL"},
			{"avg_trade_size", "REAL"},
			{"total_fees", "REAL"},
			{"num_trades", "INTEGER"},
			{"win_rate", "REAL"},
			{"net_profit", "REAL"},
			{"volume_segment", "TEXT"},
			{"frequency_segment", "TEXT"},
			{"performance_segment", "TEXT"},
		},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{
			r.Account, r.TotalPnL, r.AvgPnL, r.PnLStd, r.AvgTradeSize,
			r.TotalFees, r.NumTrades, r.WinRate, r.NetProfit,
			r.VolumeSegment, r.FrequencySegment, r.PerformanceSegment,
		})
	}
	return t
}

func testsTable(rows []model.RankTest) table {
	t := table{
		name: "significance_tests",
		file: TestsFile,
		columns: []column{
			{"metric", "TEXT"},
			{"fear_n", "INTEGER"},
			{"greed_n", "INTEGER"},
			{"fear_mean", "REAL"},
			{"greed_mean", "REAL"},
			{"fear_median", "REAL"},
			{"greed_median", "REAL"},
			{"u_statistic", "REAL"},
			{"p_value", "REAL"},
			{"method", "TEXT"},
			{"significant", "INTEGER"},
		},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{
			r.Metric, r.FearN, r.GreedN, r.FearMean, r.GreedMean,
			r.FearMedian, r.GreedMedian, r.U, r.PValue, r.Method, r.Significant,
		})
	}
	return t
}

func insightsTable(rows []model.KeyInsight) table {
	t := table{
		name: "key_insights",
		file: InsightsFile,
		columns: []column{
			{"dimension", "TEXT"},
			{"fear", "REAL"},
			{"greed", "REAL"},
			{"difference", "TEXT"},
			{"p_value", "REAL"},
			{"significance", "TEXT"},
		},
	}
	for _, r := range rows {
		t.rows = append(t.rows, []any{r.Dimension, r.Fear, r.Greed, r.Difference, r.PValue, r.Significance})
	}
	return t
}

// formatCell renders a value for CSV. Missing values (nil ratios, NaN) are empty.
func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		if math.IsNaN(x) {
			return ""
		}
		return strconv.FormatFloat(x, 'f', -1, 64)
	case *float64:
		if x == nil {
			return ""
		}
		return formatCell(*x)
	case decimal.Decimal:
		return x.String()
	case time.Time:
		return x.Format(dateLayout)
	}
	return ""
}

// sqlValue converts a value to a driver-friendly type. Missing values become NULL.
func sqlValue(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case *float64:
		if x == nil {
			return nil
		}
		return sqlValue(*x)
	case decimal.Decimal:
		return x.InexactFloat64()
	case time.Time:
		return x.Format(dateLayout)
	case bool:
		if x {
			return 1
		}
		return 0
	}
	return v
}
