// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging inspects uploaded images without decoding their pixels.
package imaging

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"

	_ "golang.org/x/image/webp" // WebP decoder
)

// MaxPixels caps width*height so a small file cannot expand into a huge
// bitmap in a client.
const MaxPixels = 50_000_000

// ErrTooManyPixels is returned for images larger than MaxPixels.
var ErrTooManyPixels = errors.New("image dimensions too large")

// Info describes an image header.
type Info struct {
	Format string
	Width  int
	Height int
}

// Inspect reads the image header from r and checks its dimensions.
func Inspect(r io.Reader) (Info, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Info{}, fmt.Errorf("decoding image header: %w", err)
	}

	info := Info{Format: format, Width: cfg.Width, Height: cfg.Height}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return info, fmt.Errorf("invalid image dimensions %dx%d", cfg.Width, cfg.Height)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return info, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}
	return info, nil
}
