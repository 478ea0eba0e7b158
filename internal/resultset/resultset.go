// Package resultset normalizes the two response shapes of listing queries
// (a bare JSON array, or an object carrying pagination metadata) into Set.
package resultset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/DjordjeVuckovic/title-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/title-hunter/pkg/pagination"
)

// Set is a normalized listing page. A nil Total means the total is unknown.
type Set[T any] struct {
	Items       []T  `json:"items"`
	Total       *int `json:"total"`
	TotalCapped bool `json:"totalCapped"`
	// PageSize is the page size reported by the server, when it sent one.
	PageSize *int `json:"-"`
}

type envelope struct {
	Items       json.RawMessage `json:"items"`
	Total       json.RawMessage `json:"total"`
	TotalCapped *bool           `json:"totalCapped"`
	Size        *int            `json:"size"`
}

// FromItems builds the set a bare list normalizes to.
func FromItems[T any](items []T) *Set[T] {
	if items == nil {
		items = []T{}
	}
	total := len(items)
	return &Set[T]{Items: items, Total: &total}
}

// Normalize decodes a raw listing body. A bare array and an object with only
// "items" produce identical sets. An object with "total": null has an
// unknown total. Any other shape fails with apperr.ErrMalformedResponse.
func Normalize[T any](raw []byte) (*Set[T], error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty listing body: %w", apperr.ErrMalformedResponse)
	}

	switch trimmed[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode listing items: %v: %w", err, apperr.ErrMalformedResponse)
		}
		return FromItems(items), nil
	case '{':
		return normalizeObject[T](trimmed)
	default:
		return nil, fmt.Errorf("listing body is neither a list nor an object: %w", apperr.ErrMalformedResponse)
	}
}

func normalizeObject[T any](raw []byte) (*Set[T], error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode listing object: %v: %w", err, apperr.ErrMalformedResponse)
	}

	itemsRaw := bytes.TrimLeft(env.Items, " \t\r\n")
	if len(itemsRaw) == 0 || itemsRaw[0] != '[' {
		return nil, fmt.Errorf("listing object has no items list: %w", apperr.ErrMalformedResponse)
	}

	var items []T
	if err := json.Unmarshal(itemsRaw, &items); err != nil {
		return nil, fmt.Errorf("decode listing items: %v: %w", err, apperr.ErrMalformedResponse)
	}

	set := FromItems(items)
	set.PageSize = env.Size
	if env.TotalCapped != nil {
		set.TotalCapped = *env.TotalCapped
	}

	switch {
	case len(env.Total) == 0:
		// absent: the page is the whole result
	case bytes.Equal(env.Total, []byte("null")):
		set.Total = nil
	default:
		var total int
		if err := json.Unmarshal(env.Total, &total); err != nil {
			return nil, fmt.Errorf("decode listing total: %v: %w", err, apperr.ErrMalformedResponse)
		}
		set.Total = &total
	}

	return set, nil
}

// Window derives the pagination window for the requested page.
func (s *Set[T]) Window(requestedPage, pageSize int) pagination.Window {
	if s == nil {
		return pagination.NewWindow(requestedPage, nil, pageSize)
	}
	return pagination.NewWindow(requestedPage, s.Total, pageSize)
}

// LocalPage slices a one-based page out of the items. It serves servers that
// answer a paged query with the full list.
func (s *Set[T]) LocalPage(page, size int) []T {
	if s == nil || size <= 0 {
		return nil
	}
	start := (max(1, page) - 1) * size
	if start >= len(s.Items) {
		return []T{}
	}
	end := min(len(s.Items), start+size)
	return s.Items[start:end]
}
