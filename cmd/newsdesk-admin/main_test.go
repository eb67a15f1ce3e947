// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/olegiv/newsdesk/internal/logging"
	"github.com/olegiv/newsdesk/internal/service"
	"github.com/olegiv/newsdesk/internal/store"
)

func TestRun_CreatesAdminOnce(t *testing.T) {
	cfg := adminConfig{
		DBPath:   filepath.Join(t.TempDir(), "data", "newsdesk.db"),
		Name:     "new admin",
		Password: "987654321",
	}
	logger := logging.Discard()

	if err := run(cfg, logger); err != nil {
		t.Fatalf("first run: %v", err)
	}
	cfg.Password = "changed"
	if err := run(cfg, logger); err != nil {
		t.Fatalf("second run: %v", err)
	}

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	defer func() { _ = db.Close() }()

	// The second run must not have replaced the password
	if _, err := service.NewAdminService(db, logger).Login(context.Background(), "new admin", "987654321"); err != nil {
		t.Errorf("Login with original password: %v", err)
	}
}

func TestRun_RequiresPassword(t *testing.T) {
	cfg := adminConfig{DBPath: filepath.Join(t.TempDir(), "newsdesk.db"), Name: "admin"}
	if err := run(cfg, logging.Discard()); err == nil {
		t.Error("expected error without password")
	}
}
