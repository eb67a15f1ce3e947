// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/newsdesk/internal/auth"
)

// SeedAdmin creates the named admin account unless it already exists.
// It reports whether a new account was created.
func SeedAdmin(ctx context.Context, db DBTX, name, password string) (bool, error) {
	if name == "" || password == "" {
		return false, errors.New("admin name and password are required")
	}

	queries := New(db)

	_, err := queries.GetAdminByName(ctx, name)
	if err == nil {
		slog.Info("admin already exists, skipping seed", "name", name)
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("checking for admin: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hashing password: %w", err)
	}

	admin, err := queries.CreateAdmin(ctx, CreateAdminParams{
		ID:           uuid.NewString(),
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("creating admin: %w", err)
	}

	slog.Info("created admin", "id", admin.ID, "name", admin.Name)
	return true, nil
}
