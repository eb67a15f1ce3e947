// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds small helpers for file names and nullable columns.
package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// maxFilenameLength caps the client-supplied part of a stored name.
const maxFilenameLength = 100

// CleanFilename reduces a client-supplied file name to a URL-safe base name.
// Directory components (with either slash) are dropped, whitespace becomes
// "-", and anything outside [A-Za-z0-9._-] is removed. Leading dots are
// trimmed so the result is never hidden or a traversal element. The result
// may be empty.
func CleanFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteByte('-')
		}
	}

	cleaned := strings.TrimLeft(b.String(), ".")
	if len(cleaned) > maxFilenameLength {
		// Keep the extension when truncating
		ext := filepath.Ext(cleaned)
		if len(ext) >= maxFilenameLength {
			ext = ""
		}
		cleaned = cleaned[:maxFilenameLength-len(ext)] + ext
	}
	return cleaned
}

// ValidatePathWithinBase ensures that a resolved path is within the expected
// base directory.
func ValidatePathWithinBase(basePath, targetPath string) error {
	absBase, err := filepath.Abs(filepath.Clean(basePath))
	if err != nil {
		return fmt.Errorf("invalid base path: %w", err)
	}

	absTarget, err := filepath.Abs(filepath.Clean(targetPath))
	if err != nil {
		return fmt.Errorf("invalid target path: %w", err)
	}

	// Trailing separator so /uploads-other does not match /uploads
	if !strings.HasPrefix(absTarget, absBase+string(filepath.Separator)) {
		return fmt.Errorf("path traversal detected: %q escapes %q", targetPath, basePath)
	}

	return nil
}

// JoinFile joins a single file name onto dir. Names containing a separator,
// or resolving to the directory itself or outside it, are rejected.
func JoinFile(dir, name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid file name: %q", name)
	}

	full := filepath.Join(dir, name)
	if err := ValidatePathWithinBase(dir, full); err != nil {
		return "", err
	}
	return full, nil
}
