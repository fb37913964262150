// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the service reads at startup.
type Config struct {
	HTTPPort       string        `mapstructure:"HTTP_PORT"`
	SpannerDB      string        `mapstructure:"SPANNER_DB"`
	CatalogBaseURL string        `mapstructure:"CATALOG_BASE_URL"`
	CatalogTimeout time.Duration `mapstructure:"CATALOG_TIMEOUT"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
}

// Load reads configuration from environment variables with sane defaults.
// SPANNER_DB may be empty, in which case the cart runs memory-only.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("SPANNER_DB", "")
	v.SetDefault("CATALOG_BASE_URL", "https://huitian.serv00.net/project/")
	v.SetDefault("CATALOG_TIMEOUT", "10s")
	v.SetDefault("SESSION_TTL", "30m")
	v.SetDefault("LOG_LEVEL", "info")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if cfg.CatalogBaseURL == "" {
		return nil, fmt.Errorf("CATALOG_BASE_URL cannot be empty")
	}
	if cfg.CatalogTimeout <= 0 {
		return nil, fmt.Errorf("CATALOG_TIMEOUT must be positive")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive")
	}

	return &cfg, nil
}
