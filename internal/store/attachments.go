// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "context"

const listAttachmentNames = `-- name: ListAttachmentNames :many
SELECT image FROM articles WHERE image IS NOT NULL
UNION
SELECT image FROM carousel_items WHERE image IS NOT NULL
`

// ListAttachmentNames returns every stored file name referenced by an
// article or a carousel item.
func (q *Queries) ListAttachmentNames(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listAttachmentNames)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
