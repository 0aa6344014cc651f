// Package config provides server configuration with multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (DURACUBE_ prefix, runtime override)
//  2. Config file (~/.duracube/config.yaml or ./config.yaml)
//  3. Default values
//
// Error handling uses sentinel errors checked with errors.Is(), wrapped
// with context via fmt.Errorf("%w: details", ErrXxx).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrConfigNil indicates the configuration is nil.
	ErrConfigNil = errors.New("configuration is nil")

	// ErrInvalidAddr indicates the listen address is invalid.
	ErrInvalidAddr = errors.New("invalid listen address")

	// ErrInvalidDataDir indicates the data directory does not exist.
	ErrInvalidDataDir = errors.New("invalid data directory")

	// ErrInvalidKeepAlive indicates the SSE keep-alive interval is out of range.
	ErrInvalidKeepAlive = errors.New("invalid keep-alive interval")

	// ErrInvalidRateBurst indicates the rate-limiter burst is out of range.
	ErrInvalidRateBurst = errors.New("invalid rate burst")
)

// Defaults.
const (
	DefaultAddr             = "127.0.0.1:3500"
	DefaultKeepAliveSeconds = 30
	DefaultRateBurst        = 60
	MaxKeepAliveSeconds     = 600
	MaxRateBurst            = 10000
)

// Config stores server configuration.
type Config struct {
	// Addr is the host:port the HTTP server listens on.
	Addr string `mapstructure:"addr" json:"addr"`

	// DataDir optionally overrides embedded knowledge documents per file.
	DataDir string `mapstructure:"data_dir" json:"data_dir"`

	// KeepAliveSeconds is the SSE keep-alive cadence.
	KeepAliveSeconds int `mapstructure:"keepalive_seconds" json:"keepalive_seconds"`

	// CORSOrigins lists origins permitted to access the API.
	CORSOrigins []string `mapstructure:"cors_origins" json:"cors_origins"`

	// RateBurst is the per-IP rate limiter burst size (0 = default).
	RateBurst int `mapstructure:"rate_burst" json:"rate_burst"`
}

// KeepAlive returns the keep-alive cadence as a duration.
func (c *Config) KeepAlive() time.Duration {
	return time.Duration(c.KeepAliveSeconds) * time.Second
}

// Load loads configuration.
// Priority: environment variables > configuration file > defaults.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}
	configDir := filepath.Join(home, ".duracube")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetDefault("addr", DefaultAddr)
	v.SetDefault("data_dir", "")
	v.SetDefault("keepalive_seconds", DefaultKeepAliveSeconds)
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("rate_burst", DefaultRateBurst)

	v.SetEnvPrefix("DURACUBE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	return &cfg, nil
}
