// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Server       ServerConfig
	Logging      LoggingConfig
	Selection    SelectionConfig
	Rates        RatesConfig
	Redis        RedisConfig
	Availability AvailabilityConfig
	App          AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// SelectionConfig holds the award-selection settings.
type SelectionConfig struct {
	// BaseCurrency is the currency all costs are compared in
	BaseCurrency string `env:"BASE_CURRENCY" envDefault:"BRL"`

	// MileageValues is a "program=value" list giving the worth of 1000
	// miles per loyalty program, in base-currency smallest units
	MileageValues string `env:"MILEAGE_VALUES" envDefault:"azul=1400,smiles=1650,qantas=2100"`

	// AirportsFile optionally points to a CSV extending the built-in
	// airport table
	AirportsFile string `env:"AIRPORTS_FILE"`

	// GlobalTimeout bounds one full selection pass across all sources
	GlobalTimeout time.Duration `env:"SELECTION_GLOBAL_TIMEOUT" envDefault:"120s"`
}

// RatesConfig holds the exchange-rate API settings.
type RatesConfig struct {
	BaseURL string        `env:"RATES_BASE_URL" envDefault:"https://v6.exchangerate-api.com/v6"`
	APIKey  string        `env:"RATES_API_KEY"`
	Timeout time.Duration `env:"RATES_TIMEOUT" envDefault:"5s"`
}

// RedisConfig holds the optional shared rate-cache settings.
type RedisConfig struct {
	Enabled  bool          `env:"REDIS_ENABLED" envDefault:"false"`
	Addr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	RateTTL  time.Duration `env:"REDIS_RATE_TTL" envDefault:"24h"`
}

// AvailabilityConfig holds the award-availability API settings.
type AvailabilityConfig struct {
	BaseURL           string        `env:"AVAILABILITY_BASE_URL"`
	APIKey            string        `env:"AVAILABILITY_API_KEY"`
	PageSize          int           `env:"AVAILABILITY_PAGE_SIZE" envDefault:"500"`
	MaxPages          int           `env:"AVAILABILITY_MAX_PAGES" envDefault:"10"`
	RequestsPerSecond float64       `env:"AVAILABILITY_RPS" envDefault:"2"`
	Burst             int           `env:"AVAILABILITY_BURST" envDefault:"1"`
	Timeout           time.Duration `env:"AVAILABILITY_TIMEOUT" envDefault:"30s"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	// Validate server port
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	// Validate timeouts are positive
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Selection.GlobalTimeout <= 0 {
		return fmt.Errorf("SELECTION_GLOBAL_TIMEOUT must be positive")
	}
	if cfg.Rates.Timeout <= 0 {
		return fmt.Errorf("RATES_TIMEOUT must be positive")
	}
	if cfg.Availability.Timeout <= 0 {
		return fmt.Errorf("AVAILABILITY_TIMEOUT must be positive")
	}

	if cfg.Selection.BaseCurrency == "" {
		return fmt.Errorf("BASE_CURRENCY must not be empty")
	}
	if cfg.Selection.MileageValues == "" {
		return fmt.Errorf("MILEAGE_VALUES must not be empty")
	}

	if cfg.Availability.PageSize < 1 {
		return fmt.Errorf("AVAILABILITY_PAGE_SIZE must be at least 1, got %d", cfg.Availability.PageSize)
	}
	if cfg.Availability.MaxPages < 1 {
		return fmt.Errorf("AVAILABILITY_MAX_PAGES must be at least 1, got %d", cfg.Availability.MaxPages)
	}
	if cfg.Availability.RequestsPerSecond < 0 {
		return fmt.Errorf("AVAILABILITY_RPS must not be negative")
	}

	// Validate log level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	// Validate log format
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	// Validate app environment
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
