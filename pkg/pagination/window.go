package pagination

// Entry is one element of a page strip: a page number or an ellipsis marker.
type Entry struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Window is the display metadata derived from a requested page and a total.
// It is recomputed on demand and holds no hidden state.
type Window struct {
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
	Strip       []Entry `json:"strip"`
}

// NewWindow clamps requestedPage into [1, totalPages] and builds the compact
// page strip. A nil total means the total is unknown and yields a single page.
//
// For more than StripMaxPages pages the strip is: first page, an optional
// ellipsis, the pages around the current one, an optional ellipsis and the
// last page.
func NewWindow(requestedPage int, total *int, pageSize int) Window {
	if pageSize <= 0 {
		pageSize = PageDefaultSize
	}

	totalPages := TotalPages(total, pageSize)
	current := min(max(1, requestedPage), totalPages)

	return Window{
		CurrentPage: current,
		TotalPages:  totalPages,
		Strip:       strip(current, totalPages),
	}
}

// TotalPages returns max(1, ceil(total/pageSize)), or 1 when total is unknown.
func TotalPages(total *int, pageSize int) int {
	if total == nil || pageSize <= 0 {
		return 1
	}
	return max(1, (*total+pageSize-1)/pageSize)
}

func strip(current, totalPages int) []Entry {
	if totalPages <= StripMaxPages {
		entries := make([]Entry, 0, totalPages)
		for p := 1; p <= totalPages; p++ {
			entries = append(entries, Entry{Page: p})
		}
		return entries
	}

	entries := make([]Entry, 0, StripMaxPages)
	entries = append(entries, Entry{Page: 1})
	if current > 3 {
		entries = append(entries, Entry{Ellipsis: true})
	}

	start := max(2, current-1)
	end := min(totalPages-1, current+1)
	for p := start; p <= end; p++ {
		entries = append(entries, Entry{Page: p})
	}

	if current < totalPages-2 {
		entries = append(entries, Entry{Ellipsis: true})
	}
	return append(entries, Entry{Page: totalPages})
}

// HasPrev reports whether a previous page exists.
func (w Window) HasPrev() bool {
	return w.CurrentPage > 1
}

// HasNext reports whether a next page exists.
func (w Window) HasNext() bool {
	return w.CurrentPage < w.TotalPages
}

// Prev returns the previous page, never below 1.
func (w Window) Prev() int {
	return max(1, w.CurrentPage-1)
}

// Next returns the next page, never above TotalPages.
func (w Window) Next() int {
	return min(w.TotalPages, w.CurrentPage+1)
}

// Pages returns the page numbers of the strip, skipping ellipses.
func (w Window) Pages() []int {
	pages := make([]int, 0, len(w.Strip))
	for _, e := range w.Strip {
		if !e.Ellipsis {
			pages = append(pages, e.Page)
		}
	}
	return pages
}
