// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"html"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/olegiv/newsdesk/internal/store"
	"github.com/olegiv/newsdesk/internal/util"
)

// Article is a news article as returned by the API.
type Article struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Identifier returns the article id.
func (a Article) Identifier() string { return a.ID }

// contentPolicy strips scripts and event handlers from editor HTML.
var contentPolicy = bluemonday.UGCPolicy()

// sanitizeContent returns s unchanged when the policy would only escape its
// text, and the sanitized HTML when markup had to be removed.
func sanitizeContent(s string) string {
	clean := contentPolicy.Sanitize(s)
	if html.UnescapeString(clean) == s {
		return s
	}
	return clean
}

// ArticleKind describes articles to ContentService.
func ArticleKind(db store.DBTX) Kind[Article] {
	return Kind[Article]{
		Name:           "Article",
		Collection:     "articles",
		Required:       []string{"title", "category", "content"},
		MissingMessage: "All fields are required",
		Apply: func(a Article, f Fields) Article {
			f.copyTo("title", &a.Title)
			f.copyTo("category", &a.Category)
			if content, ok := f["content"]; ok {
				a.Content = sanitizeContent(content)
			}
			return a
		},
		ImageOf: func(a Article) string { return a.Image },
		WithImage: func(a Article, image string) Article {
			a.Image = image
			return a
		},
		Repo: &articleRepository{queries: store.New(db), now: time.Now},
	}
}

// ArticleService is the content service for articles.
type ArticleService = ContentService[Article]

type articleRepository struct {
	queries *store.Queries
	now     func() time.Time
}

func articleFromRow(row store.Article) Article {
	return Article{
		ID:        row.ID,
		Title:     row.Title,
		Category:  row.Category,
		Content:   row.Content,
		Image:     util.StringOrEmpty(row.Image),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func (r *articleRepository) List(ctx context.Context) ([]Article, error) {
	rows, err := r.queries.ListArticles(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]Article, 0, len(rows))
	for _, row := range rows {
		items = append(items, articleFromRow(row))
	}
	return items, nil
}

func (r *articleRepository) Get(ctx context.Context, id string) (Article, error) {
	if !validID(id) {
		return Article{}, ErrNotFound
	}
	row, err := r.queries.GetArticleByID(ctx, id)
	if err != nil {
		return Article{}, notFoundOnNoRows(err)
	}
	return articleFromRow(row), nil
}

func (r *articleRepository) Create(ctx context.Context, a Article) (Article, error) {
	now := r.now().UTC()
	row, err := r.queries.CreateArticle(ctx, store.CreateArticleParams{
		ID:        uuid.NewString(),
		Title:     a.Title,
		Category:  a.Category,
		Content:   a.Content,
		Image:     util.NullString(a.Image),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Article{}, err
	}
	return articleFromRow(row), nil
}

func (r *articleRepository) Update(ctx context.Context, id string, a Article) (Article, error) {
	if !validID(id) {
		return Article{}, ErrNotFound
	}
	row, err := r.queries.UpdateArticle(ctx, store.UpdateArticleParams{
		ID:        id,
		Title:     a.Title,
		Category:  a.Category,
		Content:   a.Content,
		Image:     util.NullString(a.Image),
		UpdatedAt: r.now().UTC(),
	})
	if err != nil {
		return Article{}, notFoundOnNoRows(err)
	}
	return articleFromRow(row), nil
}

func (r *articleRepository) Delete(ctx context.Context, id string) (Article, error) {
	if !validID(id) {
		return Article{}, ErrNotFound
	}
	row, err := r.queries.DeleteArticle(ctx, id)
	if err != nil {
		return Article{}, notFoundOnNoRows(err)
	}
	return articleFromRow(row), nil
}

// validID reports whether id can name a record. Anything that is not a
// UUID can never match, so it is treated as not found without a query.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFoundOnNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
