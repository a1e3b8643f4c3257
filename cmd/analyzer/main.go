package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"TraderSentiment/internal/collector"
	"TraderSentiment/internal/config"
	"TraderSentiment/internal/logger"
	"TraderSentiment/internal/pipeline"
	"TraderSentiment/internal/recorder"
)

var version = "dev"

var (
	cfgPath   string
	sentiment string
	trades    string
	outputDir string
	sqlite    string
	promFile  string
	mockDays  int
	quiet     bool
	dryRun    bool
)

var rootCmd = &cobra.Command{
	Use:           "analyzer",
	Short:         "Trader behaviour under Fear and Greed market sentiment",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full analysis once and export the result tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return run(ctx, cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	defaultCfg := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultCfg = v
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "config file")

	f := runCmd.Flags()
	f.StringVar(&sentiment, "sentiment", "", "sentiment CSV (overrides config)")
	f.StringVar(&trades, "trades", "", "trades CSV (overrides config)")
	f.StringVarP(&outputDir, "output", "o", "", "output directory (overrides config)")
	f.StringVar(&sqlite, "sqlite", "", "also write every table to this SQLite file")
	f.StringVar(&promFile, "metrics-file", "", "write stage metrics in Prometheus text format")
	f.IntVar(&mockDays, "mock", 0, "use N days of generated sample data instead of CSV input")
	f.BoolVarP(&quiet, "quiet", "q", false, "do not print the console report")
	f.BoolVar(&dryRun, "dry-run", false, "run every stage but write no tables")

	rootCmd.AddCommand(runCmd, versionCmd)
}

func run(ctx context.Context, cmd *cobra.Command) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if sentiment != "" {
		cfg.Input.SentimentFile = sentiment
	}
	if trades != "" {
		cfg.Input.TradesFile = trades
	}
	if outputDir != "" {
		cfg.Output.Dir = outputDir
	}
	if sqlite != "" {
		cfg.Output.SQLitePath = sqlite
	}
	if promFile != "" {
		cfg.Output.MetricsFile = promFile
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	if err := logger.Init(logger.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Dir:     cfg.Logging.Dir,
		Version: version,
	}); err != nil {
		return err
	}

	runID := uuid.NewString()

	var src collector.Source = collector.NewCSVSource(cfg.SentimentPath(), cfg.TradesPath())
	if mockDays > 0 {
		src = collector.NewMockSource(mockDays, 8)
	}
	log.Info().Str("source", src.Name()).Str("run_id", runID).Msg("data source selected")

	recs, err := recorders(cfg, runID)
	if err != nil {
		return err
	}
	defer func() {
		if err := recs.Close(); err != nil {
			log.Warn().Err(err).Msg("close recorders")
		}
	}()

	runner := pipeline.NewRunner(runID, collector.NewCollector(src), recs)
	runner.Alpha = cfg.Analysis.Alpha
	runner.MetricsFile = cfg.Output.MetricsFile
	runner.OutputDir = cfg.Output.Dir
	if !quiet {
		runner.Report = cmd.OutOrStdout()
	}

	_, err = runner.Run(ctx)
	return err
}

func recorders(cfg *config.Config, runID string) (recorder.Multi, error) {
	if dryRun {
		return recorder.Multi{recorder.NewNoopRecorder()}, nil
	}
	csvRec, err := recorder.NewCSVRecorder(cfg.Output.Dir)
	if err != nil {
		return nil, err
	}
	recs := recorder.Multi{csvRec}
	if cfg.Output.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Output.SQLitePath, runID)
		if err != nil {
			log.Warn().Err(err).Msg("init sqlite recorder failed, continuing with csv only")
		} else {
			recs = append(recs, sr)
		}
	}
	return recs, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("analyzer failed")
		os.Exit(1)
	}
}
