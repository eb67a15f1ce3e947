// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const createAdmin = `-- name: CreateAdmin :one
INSERT INTO admins (id, name, password_hash, created_at)
VALUES (?, ?, ?, ?)
RETURNING id, name, password_hash, created_at
`

type CreateAdminParams struct {
	ID           string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

func (q *Queries) CreateAdmin(ctx context.Context, arg CreateAdminParams) (Admin, error) {
	row := q.db.QueryRowContext(ctx, createAdmin,
		arg.ID,
		arg.Name,
		arg.PasswordHash,
		arg.CreatedAt,
	)
	var i Admin
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.PasswordHash,
		&i.CreatedAt,
	)
	return i, err
}

const getAdminByName = `-- name: GetAdminByName :one
SELECT id, name, password_hash, created_at FROM admins
WHERE name = ?
`

func (q *Queries) GetAdminByName(ctx context.Context, name string) (Admin, error) {
	row := q.db.QueryRowContext(ctx, getAdminByName, name)
	var i Admin
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.PasswordHash,
		&i.CreatedAt,
	)
	return i, err
}

const updateAdminPassword = `-- name: UpdateAdminPassword :exec
UPDATE admins SET password_hash = ? WHERE id = ?
`

type UpdateAdminPasswordParams struct {
	PasswordHash string
	ID           string
}

func (q *Queries) UpdateAdminPassword(ctx context.Context, arg UpdateAdminPasswordParams) error {
	_, err := q.db.ExecContext(ctx, updateAdminPassword, arg.PasswordHash, arg.ID)
	return err
}
