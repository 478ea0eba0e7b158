package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestNewWindow_Clamp(t *testing.T) {
	tests := []struct {
		name        string
		page        int
		total       *int
		size        int
		wantCurrent int
		wantTotal   int
	}{
		{name: "requested page past the end", page: 999, total: intPtr(45), size: 20, wantCurrent: 3, wantTotal: 3},
		{name: "zero page", page: 0, total: intPtr(45), size: 20, wantCurrent: 1, wantTotal: 3},
		{name: "negative page", page: -4, total: intPtr(45), size: 20, wantCurrent: 1, wantTotal: 3},
		{name: "empty result", page: 2, total: intPtr(0), size: 20, wantCurrent: 1, wantTotal: 1},
		{name: "exact multiple", page: 2, total: intPtr(40), size: 20, wantCurrent: 2, wantTotal: 2},
		{name: "unknown total", page: 5, total: nil, size: 20, wantCurrent: 1, wantTotal: 1},
		{name: "non-positive size falls back", page: 2, total: intPtr(45), size: 0, wantCurrent: 2, wantTotal: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(tt.page, tt.total, tt.size)
			assert.Equal(t, tt.wantCurrent, w.CurrentPage)
			assert.Equal(t, tt.wantTotal, w.TotalPages)
		})
	}
}

func TestNewWindow_Strip(t *testing.T) {
	e := func(p int) Entry { return Entry{Page: p} }
	dots := Entry{Ellipsis: true}

	tests := []struct {
		name  string
		page  int
		pages int
		want  []Entry
	}{
		{name: "single page", page: 1, pages: 1, want: []Entry{e(1)}},
		{name: "seven pages listed in full", page: 4, pages: 7, want: []Entry{e(1), e(2), e(3), e(4), e(5), e(6), e(7)}},
		{name: "first page", page: 1, pages: 10, want: []Entry{e(1), e(2), dots, e(10)}},
		{name: "third page has no leading ellipsis", page: 3, pages: 10, want: []Entry{e(1), e(2), e(3), e(4), dots, e(10)}},
		{name: "middle page", page: 5, pages: 10, want: []Entry{e(1), dots, e(4), e(5), e(6), dots, e(10)}},
		{name: "third from last has no trailing ellipsis", page: 8, pages: 10, want: []Entry{e(1), dots, e(7), e(8), e(9), e(10)}},
		{name: "last page", page: 10, pages: 10, want: []Entry{e(1), dots, e(9), e(10)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWindow(tt.page, intPtr(tt.pages*20), 20)
			assert.Equal(t, tt.want, w.Strip)
		})
	}
}

func TestNewWindow_StripBounds(t *testing.T) {
	for pages := 1; pages <= 40; pages++ {
		for page := 1; page <= pages; page++ {
			w := NewWindow(page, intPtr(pages*PageDefaultSize), PageDefaultSize)

			ellipses := 0
			seen := map[int]bool{}
			for _, entry := range w.Strip {
				if entry.Ellipsis {
					ellipses++
					continue
				}
				require.False(t, seen[entry.Page], "duplicate page %d (page=%d pages=%d)", entry.Page, page, pages)
				seen[entry.Page] = true
			}

			if pages <= StripMaxPages {
				assert.Len(t, w.Strip, pages)
				assert.Zero(t, ellipses)
				continue
			}
			assert.LessOrEqual(t, ellipses, 2)
			assert.LessOrEqual(t, len(w.Strip)-ellipses, StripMaxPages)
			assert.True(t, seen[1], "first page missing")
			assert.True(t, seen[pages], "last page missing")
			assert.True(t, seen[page], "current page missing")
		}
	}
}

func TestNewWindow_Idempotent(t *testing.T) {
	a := NewWindow(6, intPtr(500), 20)
	b := NewWindow(6, intPtr(500), 20)
	assert.Equal(t, a, b)
}

func TestWindow_Navigation(t *testing.T) {
	w := NewWindow(1, intPtr(45), 20)
	assert.False(t, w.HasPrev())
	assert.True(t, w.HasNext())
	assert.Equal(t, 1, w.Prev())
	assert.Equal(t, 2, w.Next())

	w = NewWindow(3, intPtr(45), 20)
	assert.True(t, w.HasPrev())
	assert.False(t, w.HasNext())
	assert.Equal(t, 3, w.Next())
	assert.Equal(t, []int{1, 2, 3}, w.Pages())
}

func TestOffsetRequest(t *testing.T) {
	r := NewOffsetRequest(3, 20)
	assert.Equal(t, 40, r.Offset())
	assert.Equal(t, 20, r.Limit())
	assert.Equal(t, 2, r.ZeroBasedPage())

	r = NewOffsetRequest(0, 1000)
	assert.Equal(t, 1, r.Page)
	assert.Equal(t, PageMaxSize, r.Size)
	assert.Equal(t, 0, r.Offset())
}
