// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/olegiv/newsdesk/internal/auth"
	"github.com/olegiv/newsdesk/internal/store"
)

// RoleAdmin is the only role newsdesk knows.
const RoleAdmin = "admin"

// LoginResult is returned by a successful login.
type LoginResult struct {
	Role string `json:"role"`
	Name string `json:"name"`
}

// AdminService checks admin credentials.
type AdminService struct {
	db      *sql.DB
	queries *store.Queries
	logger  *slog.Logger
}

// NewAdminService creates an admin service.
func NewAdminService(db *sql.DB, logger *slog.Logger) *AdminService {
	return &AdminService{
		db:      db,
		queries: store.New(db),
		logger:  logger,
	}
}

// Login verifies name and password. An unknown name yields a NotFoundError,
// a wrong password ErrInvalidCredentials. No session is created.
func (s *AdminService) Login(ctx context.Context, name, password string) (LoginResult, error) {
	if name == "" || password == "" {
		return LoginResult{}, &ValidationError{Message: "Name and password are required"}
	}

	admin, err := s.queries.GetAdminByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LoginResult{}, &NotFoundError{Entity: "Admin"}
		}
		return LoginResult{}, fmt.Errorf("%w: loading admin: %w", ErrPersistence, err)
	}

	ok, err := auth.CheckPassword(password, admin.PasswordHash)
	if err != nil {
		// A hash we cannot parse can never match
		s.logger.Error("stored password hash is unreadable", "admin", admin.Name, "error", err)
		return LoginResult{}, ErrInvalidCredentials
	}
	if !ok {
		return LoginResult{}, ErrInvalidCredentials
	}

	if auth.NeedsRehash(admin.PasswordHash) {
		s.rehash(ctx, admin, password)
	}

	return LoginResult{Role: RoleAdmin, Name: admin.Name}, nil
}

// rehash upgrades a legacy hash after a successful login. Failure only
// leaves the old hash in place.
func (s *AdminService) rehash(ctx context.Context, admin store.Admin, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Warn("failed to rehash admin password", "admin", admin.Name, "error", err)
		return
	}
	if err := s.queries.UpdateAdminPassword(ctx, store.UpdateAdminPasswordParams{
		ID:           admin.ID,
		PasswordHash: hash,
	}); err != nil {
		s.logger.Warn("failed to store rehashed admin password", "admin", admin.Name, "error", err)
		return
	}
	s.logger.Info("upgraded admin password hash", "admin", admin.Name)
}

// EnsureAdmin creates the admin unless the name is already taken and
// reports whether it did.
func (s *AdminService) EnsureAdmin(ctx context.Context, name, password string) (bool, error) {
	if name == "" || password == "" {
		return false, &ValidationError{Message: "Name and password are required"}
	}
	created, err := store.SeedAdmin(ctx, s.db, name, password)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return created, nil
}
