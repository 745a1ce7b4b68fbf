package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Version is reported by --version and in the default User-Agent.
const Version = "0.1.0"

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	BatchAbort    = "abort"
	BatchContinue = "continue"

	LogOff = "off"
)

// Config holds the application configuration loaded from .env and environment variables.
type Config struct {
	AppName        string        `mapstructure:"app_name"`
	LogLevel       string        `mapstructure:"log"`
	UserAgent      string        `mapstructure:"user_agent"`
	Accept         string        `mapstructure:"accept"`
	Color          string        `mapstructure:"color"`
	TimeoutSeconds int64         `mapstructure:"timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`
	BatchPolicy    string        `mapstructure:"batch_policy"`
}

// Load reads configuration from an optional .env file and HTTPIE_* environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.SetEnvPrefix("HTTPIE")

	v.SetDefault("app_name", "httpie")
	v.SetDefault("log", LogOff)
	v.SetDefault("user_agent", "httpie-go/"+Version)
	v.SetDefault("accept", "*/*")
	v.SetDefault("color", ColorAuto)
	v.SetDefault("timeout_seconds", 0) // no timeout
	v.SetDefault("batch_policy", BatchAbort)

	// LOG_LEVEL is honoured when HTTPIE_LOG is unset.
	if err := v.BindEnv("log", "HTTPIE_LOG", "LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("bind log env: %w", err)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	cfg.BatchPolicy = strings.ToLower(strings.TrimSpace(cfg.BatchPolicy))

	if cfg.TimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid timeout_seconds (must be zero or positive seconds)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings. It is re-run after CLI flags override values.
func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q (want auto, always or never)", c.Color)
	}
	switch c.BatchPolicy {
	case BatchAbort, BatchContinue:
	default:
		return fmt.Errorf("invalid batch_policy %q (want abort or continue)", c.BatchPolicy)
	}
	switch c.LogLevel {
	case LogOff, "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s (must not be negative)", c.Timeout)
	}
	return nil
}
