// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/olegiv/newsdesk/internal/cache"
)

// Fields holds submitted form values keyed by field name. A key that is
// present with an empty value differs from an absent key.
type Fields map[string]string

// copyTo sets *dst to the submitted value of name, if there is one.
func (f Fields) copyTo(name string, dst *string) {
	if v, ok := f[name]; ok {
		*dst = v
	}
}

// Upload is an optional file submitted with a create or update request.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// Repository is the persistence seam of a content kind. Get, Update and
// Delete return ErrNotFound for unknown ids.
type Repository[T any] interface {
	List(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	// Create assigns the id and timestamps.
	Create(ctx context.Context, v T) (T, error)
	// Update writes every field of v, including its image, to the record id.
	Update(ctx context.Context, id string, v T) (T, error)
	// Delete returns the removed record.
	Delete(ctx context.Context, id string) (T, error)
}

// Kind describes one content collection to ContentService.
type Kind[T any] struct {
	// Name is used in messages, e.g. "Article not found".
	Name string
	// Collection keys the list cache.
	Collection string
	Required   []string
	// MissingMessage is reported when a required field is empty.
	MissingMessage string

	// Apply overwrites the fields of v that are present in f.
	Apply     func(v T, f Fields) T
	ImageOf   func(T) string
	WithImage func(T, string) T

	Repo Repository[T]
}

// ContentService implements create/list/get/update/delete with attachment
// handling for one content kind.
type ContentService[T any] struct {
	kind        Kind[T]
	attachments *AttachmentStore
	list        *cache.Typed[[]T]
	logger      *slog.Logger
}

// NewContentService creates a content service. List results are cached in
// c for ttl and dropped on every mutation.
func NewContentService[T any](kind Kind[T], attachments *AttachmentStore, c cache.Cache, ttl time.Duration, logger *slog.Logger) *ContentService[T] {
	logger = logger.With("kind", kind.Collection)
	return &ContentService[T]{
		kind:        kind,
		attachments: attachments,
		list:        cache.NewTyped[[]T](c, kind.Collection+":list", ttl, logger),
		logger:      logger,
	}
}

func (s *ContentService[T]) validate(fields Fields) error {
	var missing []string
	for _, name := range s.kind.Required {
		if fields[name] == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Message: s.kind.MissingMessage, Fields: missing}
	}
	return nil
}

func (s *ContentService[T]) notFound() error {
	return &NotFoundError{Entity: s.kind.Name}
}

// wrapRepo maps repository errors onto the service sentinels.
func (s *ContentService[T]) wrapRepo(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return s.notFound()
	}
	return fmt.Errorf("%w: %s %s: %w", ErrPersistence, op, s.kind.Collection, err)
}

// Create validates fields, stores the optional upload and inserts the
// record. If the insert fails the stored file is removed again.
func (s *ContentService[T]) Create(ctx context.Context, fields Fields, upload *Upload) (T, error) {
	var zero T
	if err := s.validate(fields); err != nil {
		return zero, err
	}

	v := s.kind.Apply(zero, fields)

	var stored string
	if upload != nil {
		name, err := s.attachments.Store(ctx, upload.Reader, upload.Filename)
		if err != nil {
			return zero, err
		}
		stored = name
		v = s.kind.WithImage(v, stored)
	}

	created, err := s.kind.Repo.Create(ctx, v)
	if err != nil {
		s.attachments.RemoveAsync(stored)
		return zero, s.wrapRepo("creating", err)
	}

	s.list.Invalidate(ctx)
	s.logger.Info("record created", "id", idOf(created), "image", stored)
	return created, nil
}

// List returns all records in creation order. The result is never nil.
func (s *ContentService[T]) List(ctx context.Context) ([]T, error) {
	items, err := s.list.GetOrLoad(ctx, s.kind.Repo.List)
	if err != nil {
		return nil, s.wrapRepo("listing", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get returns one record.
func (s *ContentService[T]) Get(ctx context.Context, id string) (T, error) {
	v, err := s.kind.Repo.Get(ctx, id)
	if err != nil {
		var zero T
		return zero, s.wrapRepo("loading", err)
	}
	return v, nil
}

// Update overwrites the fields present in fields and keeps the others.
// With an upload the new file replaces the old one, which is removed in
// the background once the update has succeeded; without one the current
// image is kept.
func (s *ContentService[T]) Update(ctx context.Context, id string, fields Fields, upload *Upload) (T, error) {
	var zero T

	existing, err := s.kind.Repo.Get(ctx, id)
	if err != nil {
		return zero, s.wrapRepo("loading", err)
	}
	oldImage := s.kind.ImageOf(existing)

	v := s.kind.Apply(existing, fields)

	var stored string
	if upload != nil {
		name, err := s.attachments.Store(ctx, upload.Reader, upload.Filename)
		if err != nil {
			return zero, err
		}
		stored = name
		v = s.kind.WithImage(v, stored)
	}

	updated, err := s.kind.Repo.Update(ctx, id, v)
	if err != nil {
		// The new file is not referenced by anything
		s.attachments.RemoveAsync(stored)
		return zero, s.wrapRepo("updating", err)
	}

	if stored != "" && oldImage != "" && oldImage != stored {
		s.attachments.RemoveAsync(oldImage)
	}

	s.list.Invalidate(ctx)
	s.logger.Info("record updated", "id", id, "image_replaced", stored != "")
	return updated, nil
}

// Delete removes the record and then, in the background, its image.
func (s *ContentService[T]) Delete(ctx context.Context, id string) error {
	deleted, err := s.kind.Repo.Delete(ctx, id)
	if err != nil {
		return s.wrapRepo("deleting", err)
	}

	s.attachments.RemoveAsync(s.kind.ImageOf(deleted))

	s.list.Invalidate(ctx)
	s.logger.Info("record deleted", "id", id)
	return nil
}

// identified is implemented by records that expose their id for logging.
type identified interface {
	Identifier() string
}

func idOf(v any) string {
	if rec, ok := v.(identified); ok {
		return rec.Identifier()
	}
	return ""
}
