package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DjordjeVuckovic/title-hunter/internal/browse"
	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
	"github.com/DjordjeVuckovic/title-hunter/internal/highlight"
	"github.com/DjordjeVuckovic/title-hunter/internal/review"
	"github.com/DjordjeVuckovic/title-hunter/pkg/pagination"
)

func TestRendererStrip(t *testing.T) {
	total := 240
	tests := []struct {
		name string
		page int
		want string
	}{
		{"first page", 1, "[1] 2 … 12 ›\n"},
		{"middle", 6, "‹ 1 … 5 [6] 7 … 12 ›\n"},
		{"last page", 12, "‹ 1 … 11 [12]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newRenderer(&buf).strip(pagination.NewWindow(tt.page, &total, 20))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRendererStripSinglePage(t *testing.T) {
	var buf bytes.Buffer
	newRenderer(&buf).strip(pagination.NewWindow(1, nil, 20))
	assert.Empty(t, buf.String())
}

func TestRendererSuggestions(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf)

	r.suggestions(nil)
	assert.Contains(t, buf.String(), "No suggestions.")

	buf.Reset()
	year := "1999-03-31"
	s := domain.Suggestion{ID: 603, Title: "The Matrix", ReleaseDate: &year, Type: domain.TitleTypeMovie}
	r.suggestions([]browse.SuggestionView{{
		Suggestion: s,
		Spans:      highlight.Match(s.Title, "matr"),
		Caption:    s.Caption(),
	}})
	assert.Contains(t, buf.String(), "The Matrix")
	assert.Contains(t, buf.String(), "Movie • 1999")
}

func TestRendererDetailTruncatedReview(t *testing.T) {
	var buf bytes.Buffer
	d := sampleDetail(1, 0)

	newRenderer(&buf).detail(browse.DetailView{
		Detail: d,
		Reviews: []browse.ReviewView{{
			ID:       5,
			Author:   "Ada",
			Initials: "A",
			Rating:   8,
			Excerpt:  review.Excerpt{Text: "Slow start", IsTruncated: true},
		}},
		SimilarErr: errors.New("boom"),
	})

	text := buf.String()
	assert.Contains(t, text, "[A] Ada")
	assert.Contains(t, text, "8/10")
	assert.Contains(t, text, "expand 5 to read more")
	assert.Contains(t, text, "Similar titles are unavailable.")
	assert.Contains(t, text, "Drama")
}

func TestRendererListingEmpty(t *testing.T) {
	var buf bytes.Buffer
	newRenderer(&buf).listing(browse.View{Heading: "Browse Movies", Label: "0 results", Window: pagination.NewWindow(1, nil, 20)})
	assert.Contains(t, buf.String(), "No titles match these filters.")
}
