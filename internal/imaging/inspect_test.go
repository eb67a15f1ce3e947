// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package imaging

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := range width {
		for y := range height {
			img.Set(x, y, color.RGBA{R: 255, G: 128, B: 0, A: 255})
		}
	}
	return img
}

func TestInspect(t *testing.T) {
	img := createTestImage(40, 30)

	encoders := map[string]func(*bytes.Buffer) error{
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, img) },
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, img, nil) },
		"gif":  func(b *bytes.Buffer) error { return gif.Encode(b, img, nil) },
	}

	for format, encode := range encoders {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := encode(&buf); err != nil {
				t.Fatalf("encode: %v", err)
			}

			info, err := Inspect(&buf)
			if err != nil {
				t.Fatalf("Inspect: %v", err)
			}
			if info.Format != format || info.Width != 40 || info.Height != 30 {
				t.Errorf("Inspect = %+v, want %s 40x30", info, format)
			}
		})
	}
}

func TestInspect_Garbage(t *testing.T) {
	if _, err := Inspect(bytes.NewReader([]byte("\x89PNG\r\n\x1a\nnot really"))); err == nil {
		t.Error("expected error for truncated PNG")
	}
}

func TestInspect_TooManyPixels(t *testing.T) {
	// A PNG header is enough for DecodeConfig
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	// IHDR width and height live at offsets 16 and 20
	copy(data[16:20], []byte{0x00, 0x01, 0x86, 0xa0}) // 100000
	copy(data[20:24], []byte{0x00, 0x01, 0x86, 0xa0})
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))

	_, err := Inspect(bytes.NewReader(data))
	if !errors.Is(err, ErrTooManyPixels) {
		t.Fatalf("Inspect error = %v, want ErrTooManyPixels", err)
	}
}
