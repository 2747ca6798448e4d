package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config represents application configuration. All provider credentials are
// optional: a missing key disables that provider, it never fails validation.
type Config struct {
	News     NewsConfig     `envconfig:"NEWS"`
	Quotes   QuotesConfig   `envconfig:"QUOTES"`
	Output   OutputConfig   `envconfig:"OUTPUT"`
	Telegram TelegramConfig `envconfig:"TELEGRAM"`
	Logging  LoggingConfig  `envconfig:"LOGGING"`
}

// NewsConfig represents headline feed configuration
type NewsConfig struct {
	APIKey   string `envconfig:"NEWS_API_KEY" required:"false"`
	Country  string `envconfig:"NEWS_COUNTRY" default:"us"`
	PageSize int    `envconfig:"NEWS_PAGE_SIZE" default:"8"`
}

// QuotesConfig represents the quote provider chain configuration
type QuotesConfig struct {
	APIKey         string        `envconfig:"QUOTE_API_KEY" required:"false"`
	RequestTimeout time.Duration `envconfig:"QUOTE_REQUEST_TIMEOUT" default:"12s"`
	// Delay between consecutive CSV symbol lookups, keeps the free
	// delayed-quote endpoint under its per-minute ceiling.
	CSVRequestDelay time.Duration `envconfig:"QUOTE_CSV_REQUEST_DELAY" default:"1200ms"`
}

// OutputConfig represents snapshot and site output locations
type OutputConfig struct {
	DataDir      string `envconfig:"OUTPUT_DATA_DIR" default:"data"`
	SiteDir      string `envconfig:"OUTPUT_SITE_DIR" default:"public"`
	TemplatesDir string `envconfig:"TEMPLATES_DIR" default:"templates"`
}

// TelegramConfig represents optional briefing delivery via Telegram
type TelegramConfig struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"false"`
	ChatID   int64  `envconfig:"TELEGRAM_CHAT_ID" required:"false"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
	File  string `envconfig:"LOG_FILE" required:"false"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	// Headline feed caps page size at 8
	if c.News.PageSize < 1 || c.News.PageSize > 8 {
		return fmt.Errorf("news page size must be between 1 and 8")
	}

	if c.Quotes.RequestTimeout < time.Second {
		return fmt.Errorf("quote request timeout must be at least 1s")
	}
	if c.Quotes.CSVRequestDelay < 0 {
		return fmt.Errorf("csv request delay must not be negative")
	}

	if c.Output.DataDir == "" || c.Output.SiteDir == "" {
		return fmt.Errorf("output directories must be set")
	}

	// Telegram delivery needs both token and chat id or neither
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == 0) {
		return fmt.Errorf("telegram delivery requires both bot token and chat id")
	}

	return nil
}

// TelegramEnabled returns true when briefing delivery is configured
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != 0
}
