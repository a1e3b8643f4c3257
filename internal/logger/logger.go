package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration.
type Config struct {
	Level   string // debug, info, warn, error
	Format  string // json, pretty
	Dir     string // rotating file sink, disabled when empty
	MaxSize int    // MB
	MaxAge  int    // days
	Version string
	Out     io.Writer // console destination, stderr when nil
}

// Init builds the global logger from cfg.
func Init(cfg Config) error {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		level = l
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	var writers []io.Writer
	switch cfg.Format {
	case "", "pretty":
		writers = append(writers, zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"})
	case "json":
		writers = append(writers, out)
	default:
		return fmt.Errorf("invalid log format %q", cfg.Format)
	}

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		maxSize := cfg.MaxSize
		if maxSize <= 0 {
			maxSize = 10
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, "analyzer.log"),
			MaxSize:    maxSize,
			MaxAge:     cfg.MaxAge,
			MaxBackups: 5,
			Compress:   true,
		})
	}

	log.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).With().
		Timestamp().
		Str("app", "analyzer").
		Str("version", cfg.Version).
		Logger()

	log.Debug().
		Str("level", level.String()).
		Str("format", cfg.Format).
		Bool("file", cfg.Dir != "").
		Msg("logger initialized")
	return nil
}

// WithRun returns a child of the global logger tagged with a run id.
func WithRun(runID string) zerolog.Logger {
	return log.With().Str("run_id", runID).Logger()
}
