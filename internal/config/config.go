package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Universe struct {
		Source  string `yaml:"source"` // auto | wikipedia | csv | static
		CSVPath string `yaml:"csv_path"`
		Limit   int    `yaml:"limit"`
	} `yaml:"universe"`
	DataSource struct {
		BaseURL string `yaml:"base_url"` // empty means Yahoo Finance
		APIKey  string `yaml:"api_key"`
	} `yaml:"data_source"`
	Scan struct {
		Days       int `yaml:"days"`
		Workers    int `yaml:"workers"`
		CooldownMS int `yaml:"cooldown_ms"`
	} `yaml:"scan"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A .env file next to the binary is honored first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("UNIVERSE_SOURCE"); v != "" {
		cfg.Universe.Source = v
	}
	if v := os.Getenv("UNIVERSE_CSV"); v != "" {
		cfg.Universe.CSVPath = v
	}
	if v := os.Getenv("UNIVERSE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Universe.Limit = n
		}
	}
	if v := os.Getenv("DATA_SOURCE_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_SOURCE_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("SCAN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.Workers = n
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Universe.Source == "" {
		cfg.Universe.Source = "auto"
	}
	if cfg.Universe.Limit == 0 {
		cfg.Universe.Limit = 250
	}
	if cfg.Scan.Days == 0 {
		cfg.Scan.Days = 66 // ~3 months of trading days
	}
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = 1
	}
	if cfg.Scan.CooldownMS == 0 {
		cfg.Scan.CooldownMS = 100
	}
	if cfg.Schedule.DailyCron == "" {
		// TSX closes 16:00 ET; scan half an hour later on weekdays.
		cfg.Schedule.DailyCron = "0 30 16 * * 1-5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/candlescout.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	switch c.Universe.Source {
	case "auto", "wikipedia", "static":
	case "csv":
		if c.Universe.CSVPath == "" {
			return fmt.Errorf("universe.csv_path is required for the csv source")
		}
	default:
		return fmt.Errorf("universe.source must be auto, wikipedia, csv or static")
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers must be at least 1")
	}
	return nil
}
