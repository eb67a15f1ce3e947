// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/olegiv/newsdesk/internal/store"
	"github.com/olegiv/newsdesk/internal/testutil"
)

func TestAdminService_Login(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewAdminService(db, testutil.TestLogger())
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "new admin", "987654321")
	require.NoError(t, err)
	require.True(t, created)

	res, err := svc.Login(ctx, "new admin", "987654321")
	require.NoError(t, err)
	assert.Equal(t, LoginResult{Role: "admin", Name: "new admin"}, res)
}

func TestAdminService_LoginFailures(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewAdminService(db, testutil.TestLogger())
	ctx := context.Background()

	_, err := svc.EnsureAdmin(ctx, "editor", "secret")
	require.NoError(t, err)

	tests := []struct {
		name     string
		user     string
		password string
		wantErr  error
		message  string
	}{
		{"wrong password", "editor", "nope", ErrInvalidCredentials, ""},
		{"unknown admin", "ghost", "secret", ErrNotFound, "Admin not found"},
		{"name is case sensitive", "Editor", "secret", ErrNotFound, "Admin not found"},
		{"empty name", "", "secret", ErrValidation, ""},
		{"empty password", "editor", "", ErrValidation, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.user, tt.password)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}
}

func TestAdminService_LoginUpgradesBcryptHash(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewAdminService(db, testutil.TestLogger())
	ctx := context.Background()
	queries := store.New(db)

	legacy, err := bcrypt.GenerateFromPassword([]byte("987654321"), bcrypt.MinCost)
	require.NoError(t, err)

	_, err = queries.CreateAdmin(ctx, store.CreateAdminParams{
		ID:           uuid.NewString(),
		Name:         "legacy",
		PasswordHash: string(legacy),
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "legacy", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := svc.Login(ctx, "legacy", "987654321")
	require.NoError(t, err)
	assert.Equal(t, "legacy", res.Name)

	admin, err := queries.GetAdminByName(ctx, "legacy")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(admin.PasswordHash, "$argon2id$"), "hash not upgraded: %s", admin.PasswordHash)

	// Still logs in with the upgraded hash
	_, err = svc.Login(ctx, "legacy", "987654321")
	require.NoError(t, err)
}

func TestAdminService_UnreadableHash(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewAdminService(db, testutil.TestLogger())
	ctx := context.Background()

	_, err := store.New(db).CreateAdmin(ctx, store.CreateAdminParams{
		ID: uuid.NewString(), Name: "broken", PasswordHash: "plaintext", CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "broken", "plaintext")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdminService_EnsureAdmin(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewAdminService(db, testutil.TestLogger())
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "new admin", "987654321")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(ctx, "new admin", "other")
	require.NoError(t, err)
	assert.False(t, created)

	// The original password still works
	_, err = svc.Login(ctx, "new admin", "987654321")
	require.NoError(t, err)

	_, err = svc.EnsureAdmin(ctx, "", "x")
	require.ErrorIs(t, err, ErrValidation)
}
