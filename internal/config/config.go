package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/richardbarrera32/agrotracker/internal/model"
)

// DefaultSheetURL is the published spreadsheet the dashboard tracks.
const DefaultSheetURL = "https://docs.google.com/spreadsheets/d/e/2PACX-1vTVABBaZE1vF9EYhIwsddfoq3lYfcmRHVu5rNH9ZeTM98eXVIdYGqF2zqZ-QxzGwA/pub?output=csv"

// Config holds all application configuration.
type Config struct {
	Source struct {
		CSVURL         string `yaml:"csv_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"source"`
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Windows struct {
		// Lookback for the "latest reliable price" lookup, independent
		// from the charting window.
		LatestPriceLookback string `yaml:"latest_price_lookback"`
	} `yaml:"windows"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
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

	// Environment variable overrides
	if v := os.Getenv("AGROTRACKER_CSV_URL"); v != "" {
		cfg.Source.CSVURL = v
	}
	if v := os.Getenv("AGROTRACKER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("AGROTRACKER_REFRESH_CRON"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Source.CSVURL == "" {
		cfg.Source.CSVURL = DefaultSheetURL
	}
	if cfg.Source.TimeoutSeconds == 0 {
		cfg.Source.TimeoutSeconds = 30
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 0 6 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/agrotracker.db"
	}
	if cfg.Windows.LatestPriceLookback == "" {
		cfg.Windows.LatestPriceLookback = string(model.IntervalMonth)
	}

	return cfg, nil
}

// Validate checks that all required fields are set and well-formed.
func (c *Config) Validate() error {
	if c.Source.CSVURL == "" {
		return fmt.Errorf("source.csv_url is required")
	}
	if c.Source.TimeoutSeconds < 0 {
		return fmt.Errorf("source.timeout_seconds must not be negative")
	}
	if _, err := model.ParseInterval(c.Windows.LatestPriceLookback); err != nil {
		return fmt.Errorf("windows.latest_price_lookback: %w", err)
	}
	return nil
}

// SourceTimeout returns the fetch timeout as a duration.
func (c *Config) SourceTimeout() time.Duration {
	return time.Duration(c.Source.TimeoutSeconds) * time.Second
}

// LatestPriceLookback returns the validated lookback interval.
func (c *Config) LatestPriceLookback() model.Interval {
	iv, err := model.ParseInterval(c.Windows.LatestPriceLookback)
	if err != nil {
		return model.IntervalMonth
	}
	return iv
}
