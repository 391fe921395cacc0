package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Feed struct {
		BaseURL  string        `yaml:"base_url"`
		APIKey   string        `yaml:"api_key"`
		Currency string        `yaml:"currency"`
		Unit     string        `yaml:"unit"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"feed"`
	Display struct {
		CurrencySymbol string        `yaml:"currency_symbol"`
		CardUnit       string        `yaml:"card_unit"`
		DetailUnit     string        `yaml:"detail_unit"`
		Timezone       string        `yaml:"timezone"`
		TickInterval   time.Duration `yaml:"tick_interval"`
	} `yaml:"display"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Variables from a .env file in the working directory are loaded first; real
// environment variables take precedence over them.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

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
	if v := os.Getenv("METALS_API_KEY"); v != "" {
		cfg.Feed.APIKey = v
	}
	if v := os.Getenv("METALS_BASE_URL"); v != "" {
		cfg.Feed.BaseURL = v
	}
	if v := os.Getenv("METALS_CURRENCY"); v != "" {
		cfg.Feed.Currency = v
	}
	if v := os.Getenv("METALS_UNIT"); v != "" {
		cfg.Feed.Unit = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if cfg.Feed.BaseURL == "" {
		cfg.Feed.BaseURL = "https://api.metals.dev"
	}
	if cfg.Feed.Currency == "" {
		cfg.Feed.Currency = "INR"
	}
	if cfg.Feed.Unit == "" {
		cfg.Feed.Unit = "g"
	}
	if cfg.Feed.Timeout == 0 {
		cfg.Feed.Timeout = 30 * time.Second
	}
	if cfg.Display.CurrencySymbol == "" {
		cfg.Display.CurrencySymbol = "₹"
	}
	if cfg.Display.CardUnit == "" {
		cfg.Display.CardUnit = "g"
	}
	if cfg.Display.DetailUnit == "" {
		cfg.Display.DetailUnit = "gram"
	}
	if cfg.Display.Timezone == "" {
		cfg.Display.Timezone = "Local"
	}
	if cfg.Display.TickInterval == 0 {
		cfg.Display.TickInterval = time.Second
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Feed.APIKey == "" {
		return fmt.Errorf("feed.api_key is required")
	}
	if c.Feed.BaseURL == "" {
		return fmt.Errorf("feed.base_url is required")
	}
	if c.Display.TickInterval < time.Second {
		return fmt.Errorf("display.tick_interval must be at least 1s")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("display.timezone: %w", err)
	}
	return nil
}

// Location resolves the display timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Display.Timezone)
}

// TelegramEnabled reports whether the Telegram bot should run.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
