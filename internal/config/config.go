package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DateFormat is the calendar-date layout used in config files and persisted CSVs.
const DateFormat = "2006-01-02"

// Config holds all application configuration.
type Config struct {
	Tickers []string `yaml:"tickers"`
	Range   struct {
		Start string `yaml:"start"`
		End   string `yaml:"end"`
	} `yaml:"range"`
	DataSource struct {
		Provider string `yaml:"provider"` // "yahoo" or "file"
		FileDir  string `yaml:"file_dir"` // CSV directory for the file provider
	} `yaml:"data_source"`
	Cleaning struct {
		MissingStrategy string `yaml:"missing_strategy"` // ffill|bfill|interpolate|drop
	} `yaml:"cleaning"`
	Analysis struct {
		RollingWindow       int     `yaml:"rolling_window"`
		OutlierThreshold    float64 `yaml:"outlier_threshold"`    // |z-score| above this is an outlier
		ReturnThreshold     float64 `yaml:"return_threshold"`     // percent move considered unusual
		DecompositionPeriod int     `yaml:"decomposition_period"` // trading days per season
	} `yaml:"analysis"`
	Output struct {
		Dir       string `yaml:"dir"`
		Charts    bool   `yaml:"charts"`
		CSV       bool   `yaml:"csv"`
		XLSX      bool   `yaml:"xlsx"`
		Normalize bool   `yaml:"normalize"` // min-max rescale columns before display/persist
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		Cron string `yaml:"cron"` // empty = single run
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A .env file in the working directory is honored if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

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

	// Environment variable overrides
	if v := os.Getenv("SCOPE_TICKERS"); v != "" {
		cfg.Tickers = splitList(v)
	}
	if v := os.Getenv("SCOPE_START"); v != "" {
		cfg.Range.Start = v
	}
	if v := os.Getenv("SCOPE_END"); v != "" {
		cfg.Range.End = v
	}
	if v := os.Getenv("SCOPE_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("SCOPE_MISSING_STRATEGY"); v != "" {
		cfg.Cleaning.MissingStrategy = v
	}
	if v := os.Getenv("SCOPE_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SCOPE_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCOPE_ROLLING_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.RollingWindow = n
		}
	}

	// Defaults
	if len(cfg.Tickers) == 0 {
		cfg.Tickers = []string{"TSLA", "BND", "SPY"}
	}
	if cfg.Range.End == "" {
		cfg.Range.End = time.Now().Format(DateFormat)
	}
	if cfg.Range.Start == "" {
		end, _ := time.Parse(DateFormat, cfg.Range.End)
		cfg.Range.Start = end.AddDate(-4, 0, 0).Format(DateFormat)
	}
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.Cleaning.MissingStrategy == "" {
		cfg.Cleaning.MissingStrategy = "ffill"
	}
	if cfg.Analysis.RollingWindow == 0 {
		cfg.Analysis.RollingWindow = 30
	}
	if cfg.Analysis.OutlierThreshold == 0 {
		cfg.Analysis.OutlierThreshold = 3
	}
	if cfg.Analysis.ReturnThreshold == 0 {
		cfg.Analysis.ReturnThreshold = 2
	}
	if cfg.Analysis.DecompositionPeriod == 0 {
		cfg.Analysis.DecompositionPeriod = 252
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "out"
	}

	return cfg, nil
}

// StartEnd parses the configured date range.
func (c *Config) StartEnd() (start, end time.Time, err error) {
	start, err = time.Parse(DateFormat, c.Range.Start)
	if err != nil {
		return start, end, fmt.Errorf("parse range.start: %w", err)
	}
	end, err = time.Parse(DateFormat, c.Range.End)
	if err != nil {
		return start, end, fmt.Errorf("parse range.end: %w", err)
	}
	return start, end, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if len(c.Tickers) == 0 {
		return fmt.Errorf("tickers must not be empty")
	}
	start, end, err := c.StartEnd()
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("range.start must be before range.end")
	}
	switch c.DataSource.Provider {
	case "yahoo":
	case "file":
		if c.DataSource.FileDir == "" {
			return fmt.Errorf("data_source.file_dir is required for the file provider")
		}
	default:
		return fmt.Errorf("unknown data_source.provider %q", c.DataSource.Provider)
	}
	switch c.Cleaning.MissingStrategy {
	case "ffill", "bfill", "interpolate", "drop":
	default:
		return fmt.Errorf("unknown cleaning.missing_strategy %q", c.Cleaning.MissingStrategy)
	}
	if c.Analysis.RollingWindow < 2 {
		return fmt.Errorf("analysis.rolling_window must be at least 2")
	}
	if c.Analysis.DecompositionPeriod < 2 {
		return fmt.Errorf("analysis.decomposition_period must be at least 2")
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
