// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"net/url"
	"time"
)

// Config selects and configures the cache backend.
type Config struct {
	// RedisURL enables the Redis backend when set.
	RedisURL        string
	Prefix          string
	DefaultTTL      time.Duration
	CleanupInterval time.Duration

	// FallbackToMemory uses the memory backend when Redis is unreachable
	// instead of failing.
	FallbackToMemory bool
}

// DefaultConfig returns a memory-backed configuration.
func DefaultConfig() Config {
	return Config{
		Prefix:           DefaultPrefix,
		DefaultTTL:       5 * time.Minute,
		CleanupInterval:  time.Minute,
		FallbackToMemory: true,
	}
}

// New creates the cache described by cfg.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (Cache, error) {
	if cfg.RedisURL == "" {
		logger.Info("using memory cache", "ttl", cfg.DefaultTTL)
		return NewMemoryCache(cfg.DefaultTTL, cfg.CleanupInterval), nil
	}

	rc, err := NewRedisCache(ctx, RedisOptions{
		URL:          cfg.RedisURL,
		Prefix:       cfg.Prefix,
		DefaultTTL:   cfg.DefaultTTL,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err != nil {
		if !cfg.FallbackToMemory {
			return nil, err
		}
		logger.Warn("redis unavailable, falling back to memory cache",
			"url", SanitizeRedisURL(cfg.RedisURL), "error", err)
		return NewMemoryCache(cfg.DefaultTTL, cfg.CleanupInterval), nil
	}

	logger.Info("using redis cache", "url", SanitizeRedisURL(cfg.RedisURL), "prefix", cfg.Prefix)
	return rc, nil
}

// SanitizeRedisURL masks the password of a Redis URL for logging.
func SanitizeRedisURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid redis url>"
	}
	if _, hasPassword := u.User.Password(); hasPassword {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
