// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/olegiv/newsdesk/internal/store"
)

// DefaultSweepGrace keeps recent files out of a sweep. A file is stored
// before its record is written, so a young unreferenced file may still be
// claimed by a request in flight.
const DefaultSweepGrace = time.Hour

// OrphanSweeper removes stored files that no record references. Such files
// are left behind when the process stops between a record update and the
// removal of the replaced image.
type OrphanSweeper struct {
	queries     *store.Queries
	attachments *AttachmentStore
	grace       time.Duration
	now         func() time.Time
	logger      *slog.Logger
}

// NewOrphanSweeper creates a sweeper over the attachment directory.
func NewOrphanSweeper(db store.DBTX, attachments *AttachmentStore, grace time.Duration, logger *slog.Logger) *OrphanSweeper {
	return &OrphanSweeper{
		queries:     store.New(db),
		attachments: attachments,
		grace:       grace,
		now:         time.Now,
		logger:      logger,
	}
}

// Run performs one sweep and returns the number of files removed.
func (s *OrphanSweeper) Run(ctx context.Context) (int, error) {
	names, err := s.queries.ListAttachmentNames(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: listing referenced attachments: %w", ErrPersistence, err)
	}
	referenced := make(map[string]bool, len(names))
	for _, name := range names {
		referenced[name] = true
	}

	entries, err := os.ReadDir(s.attachments.Dir())
	if err != nil {
		return 0, fmt.Errorf("%w: reading upload directory: %w", ErrStorage, err)
	}

	cutoff := s.now().Add(-s.grace)
	removed := 0
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if !entry.Type().IsRegular() || referenced[entry.Name()] {
			continue
		}

		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}

		if ok, _ := s.attachments.remove(entry.Name()); ok {
			removed++
		}
	}

	if removed > 0 {
		s.logger.Info("removed orphaned attachments", "count", removed)
	}
	return removed, nil
}
