package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"SignalSentinel/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider string        `yaml:"provider" default:"eodhd" validate:"oneof=eodhd yahoo mock"`
		BaseURL  string        `yaml:"base_url"`
		APIKey   string        `yaml:"api_key"`
		Symbol   string        `yaml:"symbol" default:"IBM.US" validate:"required"`
		Interval string        `yaml:"interval" default:"1m" validate:"required"`
		Timeout  time.Duration `yaml:"timeout" default:"30s" validate:"gt=0"`
	} `yaml:"data_source"`
	Pipeline struct {
		ResampleWidth       time.Duration `yaml:"resample_width" default:"5m" validate:"gt=0"`
		SMAWindow           int           `yaml:"sma_window" default:"20" validate:"min=1"`
		RSIWindow           int           `yaml:"rsi_window" default:"14" validate:"min=1"`
		Lookahead           int           `yaml:"lookahead" default:"5" validate:"min=1"`
		ConsolidationWindow int           `yaml:"consolidation_window" default:"30" validate:"min=1"`
		BuyMultiplier       float64       `yaml:"buy_multiplier" default:"1.01" validate:"gt=0"`
		SellMultiplier      float64       `yaml:"sell_multiplier" default:"0.99" validate:"gt=0"`
		BuyRSIBelow         float64       `yaml:"buy_rsi_below" default:"35" validate:"gte=0,lte=100"`
		SellRSIAbove        float64       `yaml:"sell_rsi_above" default:"65" validate:"gte=0,lte=100"`
	} `yaml:"pipeline"`
	Schedule struct {
		PollCron     string        `yaml:"poll_cron" default:"@every 60s" validate:"required"`
		FetchTimeout time.Duration `yaml:"fetch_timeout" default:"30s" validate:"gt=0"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Server struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr" default:":8080"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=trace debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

var validate = validator.New()

// Load reads config from a YAML file over the struct defaults, then applies
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

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
	if v := os.Getenv("EODHD_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("DATA_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
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
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("POLL_CRON"); v != "" {
		cfg.Schedule.PollCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	return cfg, nil
}

// Validate checks field constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.DataSource.Provider == "eodhd" && c.DataSource.APIKey == "" {
		return fmt.Errorf("data_source.api_key is required for eodhd")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if _, err := c.PollSchedule(); err != nil {
		return err
	}
	return nil
}

// PollSchedule parses the poll cron expression. Seconds-resolution specs
// and descriptors such as "@every 60s" are accepted.
func (c *Config) PollSchedule() (cron.Schedule, error) {
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	sched, err := parser.Parse(c.Schedule.PollCron)
	if err != nil {
		return nil, fmt.Errorf("schedule.poll_cron: %w", err)
	}
	return sched, nil
}

// PipelineParams converts the pipeline section into strategy parameters.
func (c *Config) PipelineParams() strategy.Params {
	p := c.Pipeline
	return strategy.Params{
		SMAWindow:           p.SMAWindow,
		RSIWindow:           p.RSIWindow,
		Lookahead:           p.Lookahead,
		ConsolidationWindow: p.ConsolidationWindow,
		BuyMultiplier:       p.BuyMultiplier,
		SellMultiplier:      p.SellMultiplier,
		BuyRSIBelow:         p.BuyRSIBelow,
		SellRSIAbove:        p.SellRSIAbove,
	}
}

// TelegramEnabled reports whether chat notifications are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
