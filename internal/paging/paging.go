// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package paging windows an ordered result set into pages.
package paging

import "github.com/pdiddy/project-catalog/pkg/types"

// MaxSize bounds the page size accepted by Paginate.
const MaxSize = 100

// Paginate returns items[page*size : page*size+size] together with the
// totals for the whole slice. A page past the end yields empty content,
// not an error. Size is clamped to 1..MaxSize and a negative page is
// treated as 0; callers are expected to have validated both already.
func Paginate[T any](items []T, page, size int) types.Page[T] {
	if size < 1 {
		size = 1
	}
	if size > MaxSize {
		size = MaxSize
	}
	if page < 0 {
		page = 0
	}

	total := len(items)
	pages := TotalPages(total, size)
	content := []T{}
	// page < pages keeps page*size below total, so the offset cannot
	// overflow however large the requested page is.
	if page < pages {
		start := page * size
		end := min(start+size, total)
		content = append(content, items[start:end]...)
	}

	return types.Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Page:          page,
		Size:          size,
	}
}

// TotalPages returns ceil(total/size).
func TotalPages(total, size int) int {
	if size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
