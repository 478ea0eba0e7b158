package browse

import (
	"context"
	"strings"

	"github.com/DjordjeVuckovic/title-hunter/internal/cache"
	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
	"github.com/DjordjeVuckovic/title-hunter/internal/highlight"
)

// MaxSuggestions is the number of suggestions shown under the search box.
const MaxSuggestions = 6

type Suggester interface {
	Suggest(ctx context.Context, query string) ([]domain.Suggestion, error)
}

// SuggestionView is a suggestion with its title split into matched runs.
type SuggestionView struct {
	domain.Suggestion
	Spans   []highlight.Span `json:"spans"`
	Caption string           `json:"caption"`
}

// Suggestions returns up to MaxSuggestions highlighted suggestions. A blank
// query returns nothing without a request.
func Suggestions(ctx context.Context, src Suggester, c *cache.Cache, query string) ([]SuggestionView, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}

	fetch := func(ctx context.Context) ([]domain.Suggestion, error) {
		return src.Suggest(ctx, q)
	}

	var (
		items []domain.Suggestion
		err   error
	)
	if c != nil {
		items, err = cache.Fetch(ctx, c, cache.KindSuggest, q, fetch)
	} else {
		items, err = fetch(ctx)
	}
	if err != nil {
		return nil, err
	}

	if len(items) > MaxSuggestions {
		items = items[:MaxSuggestions]
	}
	views := make([]SuggestionView, 0, len(items))
	for _, item := range items {
		views = append(views, SuggestionView{
			Suggestion: item,
			Spans:      highlight.Match(item.Title, q),
			Caption:    item.Caption(),
		})
	}
	return views, nil
}
