// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const carouselColumns = `id, title, caption, image, created_at, updated_at`

func scanCarouselItem(row interface{ Scan(...any) error }) (CarouselItem, error) {
	var i CarouselItem
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Caption,
		&i.Image,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createCarouselItem = `-- name: CreateCarouselItem :one
INSERT INTO carousel_items (id, title, caption, image, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + carouselColumns

type CreateCarouselItemParams struct {
	ID        string
	Title     string
	Caption   string
	Image     sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateCarouselItem(ctx context.Context, arg CreateCarouselItemParams) (CarouselItem, error) {
	row := q.db.QueryRowContext(ctx, createCarouselItem,
		arg.ID,
		arg.Title,
		arg.Caption,
		arg.Image,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanCarouselItem(row)
}

const getCarouselItemByID = `-- name: GetCarouselItemByID :one
SELECT ` + carouselColumns + ` FROM carousel_items
WHERE id = ?
`

func (q *Queries) GetCarouselItemByID(ctx context.Context, id string) (CarouselItem, error) {
	return scanCarouselItem(q.db.QueryRowContext(ctx, getCarouselItemByID, id))
}

const listCarouselItems = `-- name: ListCarouselItems :many
SELECT ` + carouselColumns + ` FROM carousel_items
ORDER BY created_at, id
`

func (q *Queries) ListCarouselItems(ctx context.Context) ([]CarouselItem, error) {
	rows, err := q.db.QueryContext(ctx, listCarouselItems)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []CarouselItem{}
	for rows.Next() {
		i, err := scanCarouselItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateCarouselItem = `-- name: UpdateCarouselItem :one
UPDATE carousel_items
SET title = ?, caption = ?, image = ?, updated_at = ?
WHERE id = ?
RETURNING ` + carouselColumns

type UpdateCarouselItemParams struct {
	Title     string
	Caption   string
	Image     sql.NullString
	UpdatedAt time.Time
	ID        string
}

// UpdateCarouselItem returns sql.ErrNoRows when no carousel item has the given id.
func (q *Queries) UpdateCarouselItem(ctx context.Context, arg UpdateCarouselItemParams) (CarouselItem, error) {
	row := q.db.QueryRowContext(ctx, updateCarouselItem,
		arg.Title,
		arg.Caption,
		arg.Image,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanCarouselItem(row)
}

const deleteCarouselItem = `-- name: DeleteCarouselItem :one
DELETE FROM carousel_items
WHERE id = ?
RETURNING ` + carouselColumns

// DeleteCarouselItem removes the carousel item and returns the deleted row, or
// sql.ErrNoRows when nothing matched.
func (q *Queries) DeleteCarouselItem(ctx context.Context, id string) (CarouselItem, error) {
	return scanCarouselItem(q.db.QueryRowContext(ctx, deleteCarouselItem, id))
}

const countCarouselItems = `-- name: CountCarouselItems :one
SELECT COUNT(*) FROM carousel_items
`

func (q *Queries) CountCarouselItems(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countCarouselItems).Scan(&count)
	return count, err
}
