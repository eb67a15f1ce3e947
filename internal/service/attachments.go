// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/newsdesk/internal/imaging"
	"github.com/olegiv/newsdesk/internal/util"
)

// Upload constraints.
const (
	MaxUploadSize = 10 * 1024 * 1024 // 10MB

	// URLPrefix is the path under which stored attachments are served.
	URLPrefix = "/uploads/"

	sniffLength     = 512
	defaultFileName = "upload.bin"
	createAttempts  = 3
)

// AllowedMimeTypes lists the sniffed content types accepted as attachments.
var AllowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// AttachmentStore keeps uploaded images in a single directory. Stored names
// are unique, so a record can always reference its file by name alone.
type AttachmentStore struct {
	dir     string
	logger  *slog.Logger
	now     func() time.Time
	pending sync.WaitGroup
}

// NewAttachmentStore creates dir if needed and returns a store rooted there.
func NewAttachmentStore(dir string, logger *slog.Logger) (*AttachmentStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating upload directory: %w", ErrStorage, err)
	}
	return &AttachmentStore{
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Dir returns the directory files are stored in.
func (s *AttachmentStore) Dir() string {
	return s.dir
}

// Store writes the contents of r under a new unique name derived from
// originalName and returns that name. Content that does not sniff as an
// allowed image type, or whose header cannot be decoded, is rejected with a
// ValidationError.
func (s *AttachmentStore) Store(ctx context.Context, r io.Reader, originalName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	head := make([]byte, sniffLength)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: reading upload: %w", ErrStorage, err)
	}
	head = head[:n]

	if mimeType := http.DetectContentType(head); n == 0 || !AllowedMimeTypes[mimeType] {
		return "", &ValidationError{Message: "Only JPEG, PNG, GIF and WebP images are allowed"}
	}

	base := util.CleanFilename(originalName)
	if base == "" {
		base = defaultFileName
	}

	f, name, err := s.create(base)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrStorage, err)
	}

	written, err := f.Write(head)
	if err == nil {
		var rest int64
		rest, err = io.Copy(f, r)
		written += int(rest)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%w: writing %s: %w", ErrStorage, name, err)
	}

	info, err := s.inspect(f.Name())
	if err != nil {
		_ = os.Remove(f.Name())
		s.logger.Info("rejected unreadable image", "name", name, "error", err)
		return "", &ValidationError{Message: "Image could not be read"}
	}

	s.logger.Debug("attachment stored", "name", name, "bytes", written,
		"format", info.Format, "width", info.Width, "height", info.Height)
	return name, nil
}

func (s *AttachmentStore) inspect(path string) (imaging.Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return imaging.Info{}, err
	}
	defer func() { _ = f.Close() }()
	return imaging.Inspect(f)
}

// create opens a fresh file with O_EXCL so two uploads can never share a
// name, retrying with a new random component on collision.
func (s *AttachmentStore) create(base string) (*os.File, string, error) {
	var lastErr error
	for range createAttempts {
		name := fmt.Sprintf("%d-%s-%s", s.now().UnixMilli(), uuid.NewString()[:8], base)

		path, err := util.JoinFile(s.dir, name)
		if err != nil {
			return nil, "", err
		}

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
		lastErr = err
	}
	return nil, "", lastErr
}

// Remove deletes a stored file. A missing file is not an error. Failures
// are logged and returned for callers that want to observe them.
func (s *AttachmentStore) Remove(name string) error {
	_, err := s.remove(name)
	return err
}

// remove reports whether this call deleted the file.
func (s *AttachmentStore) remove(name string) (bool, error) {
	if name == "" {
		return false, nil
	}

	path, err := util.JoinFile(s.dir, name)
	if err != nil {
		s.logger.Warn("refusing to remove attachment outside upload directory", "name", name, "error", err)
		return false, err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		s.logger.Error("failed to remove attachment", "name", name, "error", err)
		return false, err
	}

	s.logger.Debug("attachment removed", "name", name)
	return true, nil
}

// RemoveAsync removes a stored file on its own goroutine. The returned
// channel yields the result of Remove and is then closed.
func (s *AttachmentStore) RemoveAsync(name string) <-chan error {
	done := make(chan error, 1)
	if name == "" {
		close(done)
		return done
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		done <- s.Remove(name)
		close(done)
	}()
	return done
}

// Wait blocks until every removal started by RemoveAsync has finished.
func (s *AttachmentStore) Wait() {
	s.pending.Wait()
}
