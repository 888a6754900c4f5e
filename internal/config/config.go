package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime configuration for the reporter, sourced from
// environment variables with sane defaults. The zero-config run reproduces
// the stock report against the public service.
type Config struct {
	AppName  string `mapstructure:"APP_NAME"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	BaseURL            string `mapstructure:"FISCAL_BASE_URL"`
	UserAgent          string `mapstructure:"HTTP_USER_AGENT"`
	HTTPTimeoutSeconds int    `mapstructure:"HTTP_TIMEOUT_SECONDS"`

	// DatasetsFile optionally points at a YAML/JSON dataset registry that
	// replaces the built-in catalog.
	DatasetsFile string `mapstructure:"DATASETS_FILE"`

	RatesDisplayLimit int    `mapstructure:"RATES_DISPLAY_LIMIT"`
	DebtWindowDays    int    `mapstructure:"DEBT_WINDOW_DAYS"`
	ExchangeList      string `mapstructure:"EXCHANGE_CURRENCIES"`

	// Derived fields.
	HTTPTimeout        time.Duration `mapstructure:"-"`
	ExchangeCurrencies []string      `mapstructure:"-"`
}

// Load reads configuration from the environment (and a .env file when
// present), applies defaults, and validates the result.
func Load() (*Config, error) {
	// .env is optional; ignore the error when the file is absent.
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("APP_NAME", "bessent-fiscal-reporter")
	v.SetDefault("ENV", "production")
	v.SetDefault("LOG_LEVEL", "warn")
	v.SetDefault("FISCAL_BASE_URL", "https://api.fiscaldata.treasury.gov/services/api/fiscal_service")
	v.SetDefault("HTTP_USER_AGENT", "Treasury-API-Client/1.0")
	v.SetDefault("HTTP_TIMEOUT_SECONDS", 15)
	v.SetDefault("DATASETS_FILE", "")
	v.SetDefault("RATES_DISPLAY_LIMIT", 5)
	v.SetDefault("DEBT_WINDOW_DAYS", 7)
	v.SetDefault("EXCHANGE_CURRENCIES", "EUR,GBP,JPY,CAD")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	cfg.ExchangeCurrencies = splitCurrencies(cfg.ExchangeList)

	return &cfg, nil
}

func (c *Config) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q (expected debug, info, warn or error)", c.LogLevel)
	}

	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("FISCAL_BASE_URL must not be empty")
	}
	if c.HTTPTimeoutSeconds <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive, got %d", c.HTTPTimeoutSeconds)
	}
	if c.RatesDisplayLimit <= 0 {
		return fmt.Errorf("RATES_DISPLAY_LIMIT must be positive, got %d", c.RatesDisplayLimit)
	}
	if c.DebtWindowDays <= 0 {
		return fmt.Errorf("DEBT_WINDOW_DAYS must be positive, got %d", c.DebtWindowDays)
	}
	if len(splitCurrencies(c.ExchangeList)) == 0 {
		return fmt.Errorf("EXCHANGE_CURRENCIES must name at least one currency")
	}

	return nil
}

// splitCurrencies turns the comma-separated currency list into upper-cased
// ISO codes, dropping empty entries.
func splitCurrencies(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		code := strings.ToUpper(strings.TrimSpace(part))
		if code == "" {
			continue
		}
		out = append(out, code)
	}
	return out
}

// IsDevelopment reports whether the reporter runs in a development
// environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}
