// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command newsdesk-admin creates an admin account unless one with the same
// name already exists.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/olegiv/newsdesk/internal/logging"
	"github.com/olegiv/newsdesk/internal/service"
	"github.com/olegiv/newsdesk/internal/store"
)

// adminConfig is the subset of configuration the provisioning tool needs.
// No server port is needed here.
type adminConfig struct {
	DBPath   string `env:"NEWSDESK_DB_PATH" envDefault:"./data/newsdesk.db"`
	LogLevel string `env:"NEWSDESK_LOG_LEVEL" envDefault:"info"`
	Name     string `env:"NEWSDESK_ADMIN_NAME" envDefault:"new admin"`
	Password string `env:"NEWSDESK_ADMIN_PASSWORD"`
}

func main() {
	_ = godotenv.Load()

	var cfg adminConfig
	if err := env.Parse(&cfg); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "parsing config: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.StringVar(&cfg.Name, "name", cfg.Name, "Admin name")
	flag.StringVar(&cfg.Password, "password", cfg.Password, "Admin password (or NEWSDESK_ADMIN_PASSWORD)")
	flag.Parse()

	logger := logging.New(os.Stderr, cfg.LogLevel, "development")
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("admin provisioning failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg adminConfig, logger *slog.Logger) error {
	if cfg.Password == "" {
		return errors.New("a password is required: pass -password or set NEWSDESK_ADMIN_PASSWORD")
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created, err := service.NewAdminService(db, logger).EnsureAdmin(ctx, cfg.Name, cfg.Password)
	if err != nil {
		return err
	}

	if created {
		logger.Info("admin user created successfully", "name", cfg.Name)
	} else {
		logger.Info("admin user already exists", "name", cfg.Name)
	}
	return nil
}
