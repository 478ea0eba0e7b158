package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
	"github.com/DjordjeVuckovic/title-hunter/internal/resultset"
	"github.com/DjordjeVuckovic/title-hunter/pkg/pagination"
)

// DefaultSimilarLimit is the number of similar titles requested when the
// caller does not say.
const DefaultSimilarLimit = 12

// Search runs the listing query. Both response shapes are accepted.
func (c *Client) Search(ctx context.Context, payload domain.SearchPayload) (*resultset.Set[domain.TitleSummary], error) {
	var raw []byte
	if err := c.post(ctx, "/search", payload, &raw); err != nil {
		return nil, err
	}
	set, err := resultset.Normalize[domain.TitleSummary](raw)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return set, nil
}

// Suggest returns title suggestions for a type-ahead query.
func (c *Client) Suggest(ctx context.Context, query string) ([]domain.Suggestion, error) {
	q := url.Values{}
	q.Set("q", query)

	var items []domain.Suggestion
	if err := c.get(ctx, "/search/suggest", q, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Title(ctx context.Context, id int64) (*domain.TitleDetail, error) {
	var detail domain.TitleDetail
	if err := c.get(ctx, titlePath(id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Similar returns titles similar to id. A limit ≤ 0 uses DefaultSimilarLimit.
func (c *Client) Similar(ctx context.Context, id int64, limit int) ([]domain.TitleSummary, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))

	var items []domain.TitleSummary
	if err := c.get(ctx, titlePath(id)+"/similar", q, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) Genres(ctx context.Context) ([]domain.Genre, error) {
	var genres []domain.Genre
	if err := c.get(ctx, "/genres", nil, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

func (c *Client) Home(ctx context.Context) (*domain.HomeResponse, error) {
	var home domain.HomeResponse
	if err := c.get(ctx, "/home", nil, &home); err != nil {
		return nil, err
	}
	return &home, nil
}

// People requests a one-based page of people. The API counts pages from
// zero and may answer with the whole list instead of a page.
func (c *Client) People(ctx context.Context, page, size int) (*resultset.Set[domain.Person], error) {
	req := pagination.NewOffsetRequest(page, size)

	q := url.Values{}
	q.Set("page", strconv.Itoa(req.ZeroBasedPage()))
	q.Set("size", strconv.Itoa(req.Size))

	var raw []byte
	if err := c.get(ctx, "/people", q, &raw); err != nil {
		return nil, err
	}
	set, err := resultset.Normalize[domain.Person](raw)
	if err != nil {
		return nil, fmt.Errorf("people: %w", err)
	}
	return set, nil
}

// AddReview posts a review for a title. It requires a signed-in session.
func (c *Client) AddReview(ctx context.Context, titleID int64, payload domain.ReviewPayload) (*domain.Review, error) {
	var review domain.Review
	if err := c.post(ctx, titlePath(titleID)+"/reviews", payload, &review); err != nil {
		return nil, err
	}
	return &review, nil
}

func titlePath(id int64) string {
	return "/titles/" + strconv.FormatInt(id, 10)
}
