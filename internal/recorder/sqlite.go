package recorder

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"TraderSentiment/internal/model"
)

// SQLiteRecorder writes every table into a single SQLite file. The file is
// recreated on open so it always reflects exactly one run.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder replaces dbPath with a fresh database and records runID.
func NewSQLiteRecorder(dbPath, runID string) (*SQLiteRecorder, error) {
	for _, p := range []string{dbPath, dbPath + "-journal", dbPath + "-wal", dbPath + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("remove old database: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if _, err := db.Exec(`INSERT INTO runs (run_id, started_at) VALUES (?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339)); err != nil {
		db.Close()
		return nil, fmt.Errorf("record run: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{`CREATE TABLE runs (
		run_id     TEXT PRIMARY KEY,
		started_at TEXT NOT NULL
	)`}
	for _, t := range []table{
		dailyTable(nil), summaryTable(nil), profilesTable(nil), testsTable(nil), insightsTable(nil),
	} {
		stmts = append(stmts, createStmt(t))
	}
	stmts = append(stmts,
		`CREATE INDEX idx_daily_account ON daily_trader_metrics(account, trade_date)`,
		`CREATE INDEX idx_daily_sentiment ON daily_trader_metrics(sentiment)`,
	)

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:min(len(s), 40)], err)
		}
	}
	return nil
}

func createStmt(t table) string {
	cols := make([]string, len(t.columns))
	for i, c := range t.columns {
		cols[i] = c.name + " " + c.sqlType
	}
	return fmt.Sprintf("CREATE TABLE %s (\n\t%s\n)", t.name, strings.Join(cols, ",\n\t"))
}

func (r *SQLiteRecorder) RecordDaily(rows []model.DailyMetric) error {
	return r.insert(dailyTable(rows))
}

func (r *SQLiteRecorder) RecordSummary(rows []model.SentimentSummary) error {
	return r.insert(summaryTable(rows))
}

func (r *SQLiteRecorder) RecordProfiles(rows []model.TraderProfile) error {
	return r.insert(profilesTable(rows))
}

func (r *SQLiteRecorder) RecordTests(rows []model.RankTest) error {
	return r.insert(testsTable(rows))
}

func (r *SQLiteRecorder) RecordInsights(rows []model.KeyInsight) error {
	return r.insert(insightsTable(rows))
}

func (r *SQLiteRecorder) insert(t table) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%s: begin: %w", t.name, err)
	}
	defer tx.Rollback()

	marks := strings.TrimSuffix(strings.Repeat("?,", len(t.columns)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.name, strings.Join(t.header(), ", "), marks))
	if err != nil {
		return fmt.Errorf("%s: prepare: %w", t.name, err)
	}
	defer stmt.Close()

	args := make([]any, len(t.columns))
	for _, row := range t.rows {
		for i, v := range row {
			args[i] = sqlValue(v)
		}
		if _, err := stmt.Exec(args...); err != nil {
			return fmt.Errorf("%s: insert: %w", t.name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", t.name, err)
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Debug().Msg("closing sqlite recorder")
	return r.db.Close()
}
