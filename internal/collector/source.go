package collector

import (
	"context"

	"TraderSentiment/internal/model"
)

// Source provides the two raw input tables.
type Source interface {
	LoadSentiment(ctx context.Context) (*model.RawTable, error)
	LoadTrades(ctx context.Context) (*model.RawTable, error)
	Name() string
}
