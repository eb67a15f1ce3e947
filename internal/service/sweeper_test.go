// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/newsdesk/internal/cache"
	"github.com/olegiv/newsdesk/internal/testutil"
)

func TestOrphanSweeper_Run(t *testing.T) {
	db := testutil.TestDB(t)
	logger := testutil.TestLogger()
	attachments := newTestAttachments(t)
	c := cache.NewMemoryCache(time.Minute, 0)
	defer func() { _ = c.Close() }()

	articles := NewContentService(ArticleKind(db), attachments, c, time.Minute, logger)
	kept, err := articles.Create(context.Background(), articleFields(), pngUpload("kept.png"))
	require.NoError(t, err)

	orphan := filepath.Join(attachments.Dir(), "1-deadbeef-orphan.png")
	require.NoError(t, os.WriteFile(orphan, testutil.PNG, 0644))
	fresh := filepath.Join(attachments.Dir(), "2-deadbeef-fresh.png")
	require.NoError(t, os.WriteFile(fresh, testutil.PNG, 0644))

	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(orphan, old, old))
	require.NoError(t, os.Chtimes(filepath.Join(attachments.Dir(), kept.Image), old, old))

	sweeper := NewOrphanSweeper(db, attachments, DefaultSweepGrace, logger)
	removed, err := sweeper.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, orphan)
	assert.FileExists(t, fresh, "files inside the grace period are kept")
	assert.FileExists(t, filepath.Join(attachments.Dir(), kept.Image), "referenced files are kept")
}

func TestOrphanSweeper_MissingDirectory(t *testing.T) {
	db := testutil.TestDB(t)
	attachments := newTestAttachments(t)
	require.NoError(t, os.RemoveAll(attachments.Dir()))

	_, err := NewOrphanSweeper(db, attachments, 0, testutil.TestLogger()).Run(context.Background())
	require.ErrorIs(t, err, ErrStorage)
}
