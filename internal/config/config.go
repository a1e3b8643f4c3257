package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Input struct {
		DataDir       string `yaml:"data_dir" envconfig:"DATA_DIR"`
		SentimentFile string `yaml:"sentiment_file" envconfig:"SENTIMENT_FILE"`
		TradesFile    string `yaml:"trades_file" envconfig:"TRADES_FILE"`
	} `yaml:"input"`
	Output struct {
		Dir         string `yaml:"dir" envconfig:"OUTPUT_DIR"`
		SQLitePath  string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
		MetricsFile string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	} `yaml:"output"`
	Analysis struct {
		Alpha float64 `yaml:"alpha" envconfig:"ALPHA"`
	} `yaml:"analysis"`
	Logging struct {
		Level  string `yaml:"level" envconfig:"LOG_LEVEL"`
		Format string `yaml:"format" envconfig:"LOG_FORMAT"`
		Dir    string `yaml:"dir" envconfig:"LOG_DIR"`
	} `yaml:"logging"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides, then defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	_ = godotenv.Load()
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Input.DataDir == "" {
		c.Input.DataDir = "data"
	}
	if c.Input.SentimentFile == "" {
		c.Input.SentimentFile = "fear_greed_index.csv"
	}
	if c.Input.TradesFile == "" {
		c.Input.TradesFile = "historical_data.csv"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "outputs"
	}
	if c.Analysis.Alpha == 0 {
		c.Analysis.Alpha = 0.05
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "pretty"
	}
}

// SentimentPath resolves the sentiment file against the data directory.
func (c *Config) SentimentPath() string {
	return c.resolve(c.Input.SentimentFile)
}

// TradesPath resolves the trades file against the data directory.
func (c *Config) TradesPath() string {
	return c.resolve(c.Input.TradesFile)
}

// Bare file names live in DataDir; anything with a directory part is used as given.
func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) || strings.ContainsRune(name, filepath.Separator) || strings.Contains(name, "/") {
		return name
	}
	return filepath.Join(c.Input.DataDir, name)
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Input.SentimentFile == "" {
		return fmt.Errorf("input.sentiment_file is required")
	}
	if c.Input.TradesFile == "" {
		return fmt.Errorf("input.trades_file is required")
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Analysis.Alpha <= 0 || c.Analysis.Alpha >= 1 {
		return fmt.Errorf("analysis.alpha must be in (0, 1), got %v", c.Analysis.Alpha)
	}
	switch c.Logging.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("logging.format must be pretty or json, got %q", c.Logging.Format)
	}
	return nil
}
