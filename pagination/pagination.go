// Package pagination splits an ordered slice into fixed-size pages.
// It never reorders; callers pass items already sorted (feeds are
// newest-first by convention).
package pagination

import "errors"

var ErrInvalidSize = errors.New("pagination: page size must be positive")

type Page[T any] struct {
	Items      []T `json:"items"`
	Number     int `json:"page"`
	Size       int `json:"size"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages }

func (p Page[T]) HasPrev() bool { return p.Number > 1 }

// Paginate returns the 1-based page number of items. A number outside
// the valid range is clamped to the nearest valid page, so a stale
// ?page= link degrades to the last page instead of an error. An empty
// input yields a single empty page.
func Paginate[T any](items []T, size, number int) (Page[T], error) {
	if size <= 0 {
		return Page[T]{}, ErrInvalidSize
	}

	total := len(items)
	pages := (total + size - 1) / size
	if pages == 0 {
		pages = 1
	}

	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}

	start := (number - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Number:     number,
		Size:       size,
		TotalItems: total,
		TotalPages: pages,
	}, nil
}
