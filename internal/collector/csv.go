package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"TraderSentiment/internal/model"
)

// CSVSource reads both tables from local CSV files with a header row.
type CSVSource struct {
	SentimentPath string
	TradesPath    string
}

func NewCSVSource(sentimentPath, tradesPath string) *CSVSource {
	return &CSVSource{SentimentPath: sentimentPath, TradesPath: tradesPath}
}

func (s *CSVSource) Name() string { return "csv" }

func (s *CSVSource) LoadSentiment(ctx context.Context) (*model.RawTable, error) {
	return ReadTable(ctx, s.SentimentPath)
}

func (s *CSVSource) LoadTrades(ctx context.Context) (*model.RawTable, error) {
	return ReadTable(ctx, s.TradesPath)
}

// ReadTable loads a CSV file into a RawTable. Rows may be shorter or longer
// than the header; missing cells read as empty.
func ReadTable(ctx context.Context, path string) (*model.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	t := &model.RawTable{Source: filepath.Base(path)}
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", path, err)
	}
	t.Header = header

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		t.Rows = append(t.Rows, row)
		if len(t.Rows)%50000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
	}
	return t, nil
}
