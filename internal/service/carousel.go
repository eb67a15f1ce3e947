// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/newsdesk/internal/store"
	"github.com/olegiv/newsdesk/internal/util"
)

// CarouselItem is one slide of the homepage carousel.
type CarouselItem struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Caption   string    `json:"caption"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Identifier returns the carousel item id.
func (c CarouselItem) Identifier() string { return c.ID }

// CarouselKind describes carousel items to ContentService.
func CarouselKind(db store.DBTX) Kind[CarouselItem] {
	return Kind[CarouselItem]{
		Name:           "Carousel item",
		Collection:     "carousel_items",
		Required:       []string{"title", "caption"},
		MissingMessage: "Title and caption are required",
		Apply: func(c CarouselItem, f Fields) CarouselItem {
			f.copyTo("title", &c.Title)
			f.copyTo("caption", &c.Caption)
			return c
		},
		ImageOf: func(c CarouselItem) string { return c.Image },
		WithImage: func(c CarouselItem, image string) CarouselItem {
			c.Image = image
			return c
		},
		Repo: &carouselRepository{queries: store.New(db), now: time.Now},
	}
}

// CarouselService is the content service for carousel items.
type CarouselService = ContentService[CarouselItem]

type carouselRepository struct {
	queries *store.Queries
	now     func() time.Time
}

func carouselFromRow(row store.CarouselItem) CarouselItem {
	return CarouselItem{
		ID:        row.ID,
		Title:     row.Title,
		Caption:   row.Caption,
		Image:     util.StringOrEmpty(row.Image),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func (r *carouselRepository) List(ctx context.Context) ([]CarouselItem, error) {
	rows, err := r.queries.ListCarouselItems(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]CarouselItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, carouselFromRow(row))
	}
	return items, nil
}

func (r *carouselRepository) Get(ctx context.Context, id string) (CarouselItem, error) {
	if !validID(id) {
		return CarouselItem{}, ErrNotFound
	}
	row, err := r.queries.GetCarouselItemByID(ctx, id)
	if err != nil {
		return CarouselItem{}, notFoundOnNoRows(err)
	}
	return carouselFromRow(row), nil
}

func (r *carouselRepository) Create(ctx context.Context, c CarouselItem) (CarouselItem, error) {
	now := r.now().UTC()
	row, err := r.queries.CreateCarouselItem(ctx, store.CreateCarouselItemParams{
		ID:        uuid.NewString(),
		Title:     c.Title,
		Caption:   c.Caption,
		Image:     util.NullString(c.Image),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return CarouselItem{}, err
	}
	return carouselFromRow(row), nil
}

func (r *carouselRepository) Update(ctx context.Context, id string, c CarouselItem) (CarouselItem, error) {
	if !validID(id) {
		return CarouselItem{}, ErrNotFound
	}
	row, err := r.queries.UpdateCarouselItem(ctx, store.UpdateCarouselItemParams{
		ID:        id,
		Title:     c.Title,
		Caption:   c.Caption,
		Image:     util.NullString(c.Image),
		UpdatedAt: r.now().UTC(),
	})
	if err != nil {
		return CarouselItem{}, notFoundOnNoRows(err)
	}
	return carouselFromRow(row), nil
}

func (r *carouselRepository) Delete(ctx context.Context, id string) (CarouselItem, error) {
	if !validID(id) {
		return CarouselItem{}, ErrNotFound
	}
	row, err := r.queries.DeleteCarouselItem(ctx, id)
	if err != nil {
		return CarouselItem{}, notFoundOnNoRows(err)
	}
	return carouselFromRow(row), nil
}
