// Package config loads server settings from TOML or YAML files and the
// environment.
//
// Load order: built-in defaults, then the file (format chosen by extension),
// then DEVTOOLS_MCP_* environment variables, then validation. A missing file
// at the default location is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/dev-tools-mcp/internal/pomodoro"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel    = "DEVTOOLS_MCP_LOG_LEVEL"
	EnvRateLimit   = "DEVTOOLS_MCP_RATE_LIMIT"
	EnvRateBurst   = "DEVTOOLS_MCP_RATE_BURST"
	EnvStrictUnits = "DEVTOOLS_MCP_STRICT_UNITS"
)

// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config holds every tunable of the server.
type Config struct {
	LogLevel  string            `toml:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	RateLimit RateLimitConfig   `toml:"rate_limit" yaml:"rate_limit"`
	Units     UnitsConfig       `toml:"units" yaml:"units"`
	QR        QRConfig          `toml:"qr" yaml:"qr"`
	Password  PasswordConfig    `toml:"password" yaml:"password"`
	Lorem     LoremConfig       `toml:"lorem" yaml:"lorem"`
	Dice      DiceConfig        `toml:"dice" yaml:"dice"`
	Pomodoro  pomodoro.Settings `toml:"pomodoro" yaml:"pomodoro"`
}

// RateLimitConfig bounds tool calls per second. PerSecond 0 disables limiting.
type RateLimitConfig struct {
	PerSecond float64 `toml:"per_second" yaml:"per_second" validate:"gte=0"`
	Burst     int     `toml:"burst" yaml:"burst" validate:"min=1"`
}

// UnitsConfig controls unit conversion.
type UnitsConfig struct {
	// Strict rejects unknown units instead of passing values through.
	Strict bool `toml:"strict" yaml:"strict"`
}

// QRConfig controls QR rendering.
type QRConfig struct {
	DefaultSize int `toml:"default_size" yaml:"default_size" validate:"min=64,max=1024"`
}

// PasswordConfig controls password generation.
type PasswordConfig struct {
	DefaultLength int `toml:"default_length" yaml:"default_length" validate:"min=4,max=128"`
}

// LoremConfig controls filler text generation.
type LoremConfig struct {
	MaxWords int `toml:"max_words" yaml:"max_words" validate:"min=1,max=10000"`
}

// DiceConfig controls the roll history.
type DiceConfig struct {
	HistorySize int `toml:"history_size" yaml:"history_size" validate:"min=1,max=100"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		RateLimit: RateLimitConfig{PerSecond: 50, Burst: 100},
		QR:        QRConfig{DefaultSize: 256},
		Password:  PasswordConfig{DefaultLength: 16},
		Lorem:     LoremConfig{MaxWords: 10000},
		Dice:      DiceConfig{HistorySize: 10},
		Pomodoro:  pomodoro.DefaultSettings(),
	}
}

// DefaultPath is the config file used when none is given:
// <user config dir>/dev-tools-mcp/config.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "dev-tools-mcp", "config.toml")
}

// Load builds a Config from path. An empty path means DefaultPath, which may
// be absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	optional := false
	if path == "" {
		path = DefaultPath()
		optional = true
	}

	if path != "" {
		err := LoadFile(cfg, path)
		switch {
		case err == nil:
		case optional && errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes path over cfg. Keys missing from the file keep their
// current values.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to decode TOML config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to decode YAML config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

// ApplyEnv overrides fields from environment variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := getenv(EnvRateLimit); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRateLimit, err)
		}
		c.RateLimit.PerSecond = f
	}
	if v := getenv(EnvRateBurst); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRateBurst, err)
		}
		c.RateLimit.Burst = n
	}
	if v := getenv(EnvStrictUnits); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrictUnits, err)
		}
		c.Units.Strict = b
	}
	return nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
