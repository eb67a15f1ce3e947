// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"NEWSDESK_DB_PATH" envDefault:"./data/newsdesk.db"`
	ServerHost string `env:"NEWSDESK_SERVER_HOST"`
	ServerPort int    `env:"NEWSDESK_SERVER_PORT,required"`
	Env        string `env:"NEWSDESK_ENV" envDefault:"development"`
	LogLevel   string `env:"NEWSDESK_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"NEWSDESK_UPLOADS_DIR" envDefault:"./uploads"`

	// CORSOrigins lists the origins allowed to call the API ("*" allows any)
	CORSOrigins []string `env:"NEWSDESK_CORS_ORIGINS" envDefault:"*" envSeparator:","`

	// Cache configuration
	RedisURL    string `env:"NEWSDESK_REDIS_URL"`                           // Optional Redis URL for the list cache
	CachePrefix string `env:"NEWSDESK_CACHE_PREFIX" envDefault:"newsdesk:"` // Redis key prefix
	CacheTTL    int    `env:"NEWSDESK_CACHE_TTL" envDefault:"300"`          // List cache TTL in seconds

	// SweepSchedule is the cron spec of the orphaned attachment sweep; "off" disables it
	SweepSchedule string `env:"NEWSDESK_SWEEP_SCHEDULE" envDefault:"@daily"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return net.JoinHostPort(c.ServerHost, strconv.Itoa(c.ServerPort))
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// SweepEnabled returns true if the orphaned attachment sweep should run.
func (c Config) SweepEnabled() bool {
	return c.SweepSchedule != "off"
}

// CacheDuration returns the list cache TTL.
func (c Config) CacheDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Load parses environment variables and returns a Config struct.
// A missing NEWSDESK_SERVER_PORT is an error.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("NEWSDESK_SERVER_PORT must be between 1 and 65535, got %d", c.ServerPort)
	}

	switch c.Env {
	case "development", "production":
	default:
		return fmt.Errorf("NEWSDESK_ENV must be development or production, got %q", c.Env)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("NEWSDESK_LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel)
	}

	if c.DBPath == "" {
		return fmt.Errorf("NEWSDESK_DB_PATH must not be empty")
	}
	if c.UploadsDir == "" {
		return fmt.Errorf("NEWSDESK_UPLOADS_DIR must not be empty")
	}
	if c.SweepSchedule == "" {
		return fmt.Errorf("NEWSDESK_SWEEP_SCHEDULE must not be empty (use \"off\" to disable)")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("NEWSDESK_CACHE_TTL must not be negative, got %d", c.CacheTTL)
	}

	return nil
}
