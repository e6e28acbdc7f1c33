// Package config loads the server configuration from an optional YAML file
// overlaid by environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/finpulse-backend/internal/domain"
	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Realtime RealtimeConfig `yaml:"realtime"`
	Log      LogConfig      `yaml:"log"`
	Display  DisplayConfig  `yaml:"display"`
	Seed     SeedConfig     `yaml:"seed"`
}

// ServerConfig controls the gRPC listener
type ServerConfig struct {
	Addr     string `yaml:"addr"`
	APIToken string `yaml:"api_token"`
}

// DatabaseConfig holds the Postgres connection settings
// ConnString wins over the individual fields when set.
type DatabaseConfig struct {
	ConnString     string        `yaml:"conn_string"`
	Host           string        `yaml:"host"`
	Port           string        `yaml:"port"`
	User           string        `yaml:"user"`
	Password       string        `yaml:"password"`
	Name           string        `yaml:"name"`
	SSLMode        string        `yaml:"sslmode"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	Migrate        bool          `yaml:"migrate"`
}

// RealtimeConfig controls the LISTEN/NOTIFY change feed
type RealtimeConfig struct {
	Enabled              bool          `yaml:"enabled"`
	Channel              string        `yaml:"channel"`
	MinReconnectInterval time.Duration `yaml:"min_reconnect_interval"`
	MaxReconnectInterval time.Duration `yaml:"max_reconnect_interval"`
	PingInterval         time.Duration `yaml:"ping_interval"`
}

// LogConfig controls zerolog output
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// DisplayConfig controls how amounts are presented
type DisplayConfig struct {
	Currency    string `yaml:"currency"`
	RecentLimit int    `yaml:"recent_limit"`
}

// SeedConfig lists the budgets created at startup when their category is missing
type SeedConfig struct {
	Budgets []SeedBudget `yaml:"budgets"`
}

// SeedBudget is one default budget; Limit is a decimal string
type SeedBudget struct {
	Category string `yaml:"category"`
	Limit    string `yaml:"limit"`
	Month    string `yaml:"month"`
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:     ":8080",
			APIToken: "dev-token",
		},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           "5432",
			User:           "postgres",
			Password:       "postgres",
			Name:           "finpulse",
			SSLMode:        "disable",
			ConnectTimeout: 10 * time.Second,
			Migrate:        true,
		},
		Realtime: RealtimeConfig{
			Enabled:              true,
			Channel:              "finpulse_changes",
			MinReconnectInterval: 10 * time.Second,
			MaxReconnectInterval: time.Minute,
			PingInterval:         90 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Display: DisplayConfig{
			Currency:    "USD",
			RecentLimit: 5,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is not empty), then environment variables
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyEnv overrides cfg with the environment variables that are set
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("GRPC_ADDR", &cfg.Server.Addr)
	str("API_TOKEN", &cfg.Server.APIToken)
	str("DB_CONN_STR", &cfg.Database.ConnString)
	str("DB_HOST", &cfg.Database.Host)
	str("DB_PORT", &cfg.Database.Port)
	str("DB_USER", &cfg.Database.User)
	str("DB_PASSWORD", &cfg.Database.Password)
	str("DB_NAME", &cfg.Database.Name)
	str("DB_SSLMODE", &cfg.Database.SSLMode)
	str("REALTIME_CHANNEL", &cfg.Realtime.Channel)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("CURRENCY", &cfg.Display.Currency)

	if v, ok := lookup("REALTIME_ENABLED"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid REALTIME_ENABLED: %w", err)
		}
		cfg.Realtime.Enabled = enabled
	}

	if v, ok := lookup("LOG_PRETTY"); ok && v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LOG_PRETTY: %w", err)
		}
		cfg.Log.Pretty = pretty
	}

	return nil
}

// Validate checks the settings that have no usable fallback
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return errors.New("server address cannot be empty")
	}
	if c.Server.APIToken == "" {
		return errors.New("api token cannot be empty")
	}
	if c.Realtime.Enabled && c.Realtime.Channel == "" {
		return errors.New("realtime channel cannot be empty when realtime is enabled")
	}
	if c.Display.RecentLimit < 0 {
		return errors.New("recent_limit must not be negative")
	}
	if _, err := c.Seed.BudgetInputs(); err != nil {
		return err
	}
	return nil
}

// BudgetInputs converts the seeded budgets into validated inputs
func (s SeedConfig) BudgetInputs() ([]domain.NewBudgetInput, error) {
	inputs := make([]domain.NewBudgetInput, 0, len(s.Budgets))
	for i, b := range s.Budgets {
		limit, err := decimal.NewFromString(strings.TrimSpace(b.Limit))
		if err != nil {
			return nil, fmt.Errorf("seed budget %d: invalid limit %q: %w", i, b.Limit, err)
		}
		input := domain.NewBudgetInput{Category: b.Category, Limit: limit, Month: b.Month}
		if err := input.Validate(); err != nil {
			return nil, fmt.Errorf("seed budget %d: %w", i, err)
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

// DSN returns the Postgres connection string
func (d DatabaseConfig) DSN() string {
	if d.ConnString != "" {
		return d.ConnString
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}
