package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"PortfolioSentinel/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		HistoryDir  string `yaml:"history_dir"` // when set, read per-symbol CSVs instead of Yahoo
		IndexSymbol string `yaml:"index_symbol"`
		HistoryDays int    `yaml:"history_days"`
	} `yaml:"data_source"`
	Files struct {
		PortfolioCSV string `yaml:"portfolio_csv"`
		UniverseCSV  string `yaml:"universe_csv"` // optional, enables rotation mode
	} `yaml:"files"`
	Schedule struct {
		ReviewCron   string `yaml:"review_cron"`
		RotationCron string `yaml:"rotation_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Cache struct {
		File       string `yaml:"file"`
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"cache"`
	Strategy strategy.Config `yaml:"strategy"`
	Proxy    string          `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("PORTFOLIO_CSV"); v != "" {
		cfg.Files.PortfolioCSV = v
	}
	if v := os.Getenv("UNIVERSE_CSV"); v != "" {
		cfg.Files.UniverseCSV = v
	}
	if v := os.Getenv("HISTORY_DIR"); v != "" {
		cfg.DataSource.HistoryDir = v
	}
	if v := os.Getenv("INDEX_SYMBOL"); v != "" {
		cfg.DataSource.IndexSymbol = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REVIEW"); v != "" {
		cfg.Schedule.ReviewCron = v
	}
	if v := os.Getenv("CRON_ROTATION"); v != "" {
		cfg.Schedule.RotationCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.DataSource.IndexSymbol == "" {
		cfg.DataSource.IndexSymbol = "^IXIC"
	}
	if cfg.DataSource.HistoryDays == 0 {
		cfg.DataSource.HistoryDays = 300
	}
	if cfg.Files.PortfolioCSV == "" {
		cfg.Files.PortfolioCSV = "data/portfolio.csv"
	}
	if cfg.Schedule.ReviewCron == "" {
		cfg.Schedule.ReviewCron = "0 30 22 * * 1-5" // after US close, UTC
	}
	if cfg.Schedule.RotationCron == "" {
		cfg.Schedule.RotationCron = "0 0 23 * * 5"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/portfolio_review.db"
	}
	if cfg.Cache.File == "" {
		cfg.Cache.File = "data/price_cache.json"
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 60
	}
	applyStrategyDefaults(&cfg.Strategy)

	return cfg, nil
}

// applyStrategyDefaults fills unset thresholds from the stock strategy.
// A partial strategy section overrides only the fields it names.
func applyStrategyDefaults(sc *strategy.Config) {
	def := strategy.DefaultConfig()
	if sc.SellL1 == 0 {
		sc.SellL1 = def.SellL1
	}
	if sc.SellL2 == 0 {
		sc.SellL2 = def.SellL2
	}
	if sc.SellL3 == 0 {
		sc.SellL3 = def.SellL3
	}
	if sc.SellL1Pct == 0 {
		sc.SellL1Pct = def.SellL1Pct
	}
	if sc.SellL2Pct == 0 {
		sc.SellL2Pct = def.SellL2Pct
	}
	if sc.BuyZoneLow == 0 {
		sc.BuyZoneLow = def.BuyZoneLow
	}
	if sc.BuyZoneHigh == 0 {
		sc.BuyZoneHigh = def.BuyZoneHigh
	}
	if sc.DeepBuy == 0 {
		sc.DeepBuy = def.DeepBuy
	}
	if sc.NearDMA == 0 {
		sc.NearDMA = def.NearDMA
	}
	if sc.IndexExtreme == 0 {
		sc.IndexExtreme = def.IndexExtreme
	}
}

// Validate checks that all required fields are set and the strategy
// thresholds are consistent.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Files.PortfolioCSV == "" {
		return fmt.Errorf("files.portfolio_csv is required")
	}
	if c.DataSource.HistoryDays < 200 {
		return fmt.Errorf("data_source.history_days must be at least 200")
	}
	if err := c.Strategy.Validate(); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}
	return nil
}
