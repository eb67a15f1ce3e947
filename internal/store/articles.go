// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const articleColumns = `id, title, category, content, image, created_at, updated_at`

func scanArticle(row interface{ Scan(...any) error }) (Article, error) {
	var i Article
	err := row.Scan(
		&i.ID,
		&i.Title,
		&i.Category,
		&i.Content,
		&i.Image,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createArticle = `-- name: CreateArticle :one
INSERT INTO articles (id, title, category, content, image, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + articleColumns

type CreateArticleParams struct {
	ID        string
	Title     string
	Category  string
	Content   string
	Image     sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateArticle(ctx context.Context, arg CreateArticleParams) (Article, error) {
	row := q.db.QueryRowContext(ctx, createArticle,
		arg.ID,
		arg.Title,
		arg.Category,
		arg.Content,
		arg.Image,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanArticle(row)
}

const getArticleByID = `-- name: GetArticleByID :one
SELECT ` + articleColumns + ` FROM articles
WHERE id = ?
`

func (q *Queries) GetArticleByID(ctx context.Context, id string) (Article, error) {
	return scanArticle(q.db.QueryRowContext(ctx, getArticleByID, id))
}

const listArticles = `-- name: ListArticles :many
SELECT ` + articleColumns + ` FROM articles
ORDER BY created_at, id
`

func (q *Queries) ListArticles(ctx context.Context) ([]Article, error) {
	rows, err := q.db.QueryContext(ctx, listArticles)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	items := []Article{}
	for rows.Next() {
		i, err := scanArticle(rows)
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

const updateArticle = `-- name: UpdateArticle :one
UPDATE articles
SET title = ?, category = ?, content = ?, image = ?, updated_at = ?
WHERE id = ?
RETURNING ` + articleColumns

type UpdateArticleParams struct {
	Title     string
	Category  string
	Content   string
	Image     sql.NullString
	UpdatedAt time.Time
	ID        string
}

// UpdateArticle returns sql.ErrNoRows when no article has the given id.
func (q *Queries) UpdateArticle(ctx context.Context, arg UpdateArticleParams) (Article, error) {
	row := q.db.QueryRowContext(ctx, updateArticle,
		arg.Title,
		arg.Category,
		arg.Content,
		arg.Image,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanArticle(row)
}

const deleteArticle = `-- name: DeleteArticle :one
DELETE FROM articles
WHERE id = ?
RETURNING ` + articleColumns

// DeleteArticle removes the article and returns the deleted row, or
// sql.ErrNoRows when nothing matched.
func (q *Queries) DeleteArticle(ctx context.Context, id string) (Article, error) {
	return scanArticle(q.db.QueryRowContext(ctx, deleteArticle, id))
}

const countArticles = `-- name: CountArticles :one
SELECT COUNT(*) FROM articles
`

func (q *Queries) CountArticles(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countArticles).Scan(&count)
	return count, err
}
