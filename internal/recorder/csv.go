package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"TraderSentiment/internal/model"
)

// CSVRecorder writes each table to its own file in dir. Files are replaced
// atomically, so a rerun on the same inputs yields byte-identical output.
type CSVRecorder struct {
	dir string
}

// NewCSVRecorder creates dir if needed.
func NewCSVRecorder(dir string) (*CSVRecorder, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &CSVRecorder{dir: dir}, nil
}

// Path returns where name is written.
func (r *CSVRecorder) Path(name string) string {
	return filepath.Join(r.dir, name)
}

func (r *CSVRecorder) RecordDaily(rows []model.DailyMetric) error {
	return r.write(dailyTable(rows))
}

func (r *CSVRecorder) RecordSummary(rows []model.SentimentSummary) error {
	return r.write(summaryTable(rows))
}

func (r *CSVRecorder) RecordProfiles(rows []model.TraderProfile) error {
	return r.write(profilesTable(rows))
}

func (r *CSVRecorder) RecordTests(rows []model.RankTest) error {
	return r.write(testsTable(rows))
}

func (r *CSVRecorder) RecordInsights(rows []model.KeyInsight) error {
	return r.write(insightsTable(rows))
}

func (r *CSVRecorder) Close() error { return nil }

func (r *CSVRecorder) write(t table) error {
	tmp, err := os.CreateTemp(r.dir, "."+t.file+".*")
	if err != nil {
		return fmt.Errorf("%s: %w", t.file, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(t.header()); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", t.file, err)
	}
	record := make([]string, len(t.columns))
	for _, row := range t.rows {
		for i, v := range row {
			record[i] = formatCell(v)
		}
		if err := w.Write(record); err != nil {
			tmp.Close()
			return fmt.Errorf("%s: %w", t.file, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("%s: %w", t.file, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%s: %w", t.file, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("%s: %w", t.file, err)
	}
	if err := os.Rename(tmp.Name(), r.Path(t.file)); err != nil {
		return fmt.Errorf("%s: %w", t.file, err)
	}

	log.Info().Str("file", r.Path(t.file)).Int("rows", len(t.rows)).Msg("table exported")
	return nil
}
