package router

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/DjordjeVuckovic/title-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/title-hunter/internal/browse"
	"github.com/DjordjeVuckovic/title-hunter/internal/cache"
	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
	"github.com/DjordjeVuckovic/title-hunter/internal/filter"
	"github.com/DjordjeVuckovic/title-hunter/internal/highlight"
	"github.com/DjordjeVuckovic/title-hunter/pkg/pagination"
)

// Catalog is the part of the catalog API the read-only gateway uses.
type Catalog interface {
	browse.Searcher
	browse.DetailSource
	browse.Suggester
	browse.PeopleSource
	Genres(ctx context.Context) ([]domain.Genre, error)
}

type BrowseRouter struct {
	e        *echo.Echo
	catalog  Catalog
	cache    *cache.Cache
	pageSize int
}

type BrowseRouterOption func(*BrowseRouter)

func WithCache(c *cache.Cache) BrowseRouterOption {
	return func(r *BrowseRouter) {
		r.cache = c
	}
}

func WithPageSize(size int) BrowseRouterOption {
	return func(r *BrowseRouter) {
		if size > 0 {
			r.pageSize = size
		}
	}
}

func NewBrowseRouter(e *echo.Echo, catalog Catalog, opts ...BrowseRouterOption) *BrowseRouter {
	r := &BrowseRouter{
		e:        e,
		catalog:  catalog,
		pageSize: pagination.PageDefaultSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *BrowseRouter) Bind() {
	api := r.e.Group("/api")
	api.GET("/browse", r.browseHandler())
	api.GET("/movies", r.browseHandler(filter.WithFixedType(domain.TitleTypeMovie)))
	api.GET("/tv", r.browseHandler(filter.WithFixedType(domain.TitleTypeTV)))
	api.GET("/suggest", r.suggestHandler)
	api.GET("/titles/:id", r.titleHandler)
	api.GET("/people", r.peopleHandler)
	api.GET("/genres", r.genresHandler)
}

type titleItem struct {
	domain.TitleSummary
	Spans       []highlight.Span `json:"spans"`
	Year        string           `json:"year,omitempty"`
	RatingLabel string           `json:"ratingLabel"`
}

type browseResponse struct {
	Heading string            `json:"heading"`
	Label   string            `json:"label"`
	Query   string            `json:"query"`
	Items   []titleItem       `json:"items"`
	Window  pagination.Window `json:"window"`
}

func (r *BrowseRouter) browseHandler(opts ...filter.Option) echo.HandlerFunc {
	return func(c echo.Context) error {
		filters := filter.Parse(c.QueryParams(), opts...)

		pageSize := r.pageSize
		if raw := c.QueryParam("size"); raw != "" {
			if size, err := strconv.Atoi(raw); err == nil {
				pageSize = pagination.NewOffsetRequest(1, size).Size
			}
		}

		screen := browse.NewScreen(c.Request().Context(), r.catalog, filters,
			browse.WithCache(r.cache),
			browse.WithPageSize(pageSize),
		)
		defer screen.Close()

		if err := screen.Load(); err != nil {
			return err
		}
		view, err := screen.Wait(c.Request().Context())
		if err != nil {
			return err
		}

		items := make([]titleItem, 0, len(view.Items))
		for _, t := range view.Items {
			items = append(items, titleItem{
				TitleSummary: t,
				Spans:        highlight.Match(t.Title, view.Query),
				Year:         t.Year(),
				RatingLabel:  t.RatingLabel(),
			})
		}

		return c.JSON(http.StatusOK, browseResponse{
			Heading: view.Heading,
			Label:   view.Label,
			Query:   screen.Query(),
			Items:   items,
			Window:  view.Window,
		})
	}
}

func (r *BrowseRouter) suggestHandler(c echo.Context) error {
	views, err := browse.Suggestions(c.Request().Context(), r.catalog, r.cache, c.QueryParam("q"))
	if err != nil {
		return err
	}
	if views == nil {
		views = []browse.SuggestionView{}
	}
	return c.JSON(http.StatusOK, views)
}

type reviewItem struct {
	ID          int64  `json:"id"`
	Author      string `json:"author"`
	Initials    string `json:"initials"`
	Date        string `json:"date"`
	Rating      int    `json:"rating"`
	Text        string `json:"text"`
	IsTruncated bool   `json:"isTruncated"`
}

type titleResponse struct {
	*domain.TitleDetail
	RatingLabel      string                `json:"ratingLabel"`
	RatingCountLabel string                `json:"ratingCountLabel,omitempty"`
	LengthLabel      string                `json:"lengthLabel"`
	OverviewText     string                `json:"overviewText"`
	Cast             []domain.CastMember   `json:"cast"`
	MoreCast         int                   `json:"moreCast"`
	Reviews          []reviewItem          `json:"recentReviews"`
	Similar          []domain.TitleSummary `json:"similar"`
	SimilarError     string                `json:"similarError,omitempty"`
}

func (r *BrowseRouter) titleHandler(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return apperr.NewValidation("title id must be a positive number")
	}

	screen := browse.NewDetailScreen(c.Request().Context(), r.catalog, browse.WithCache(r.cache))
	defer screen.Close()

	if err := screen.Open(id); err != nil {
		return err
	}
	view, err := screen.Wait(c.Request().Context())
	if err != nil {
		return err
	}

	resp := titleResponse{
		TitleDetail:      view.Detail,
		RatingLabel:      view.Detail.RatingLabel(),
		RatingCountLabel: view.Detail.RatingCountLabel(),
		LengthLabel:      view.Detail.LengthLabel(),
		OverviewText:     view.Detail.OverviewText(),
		Cast:             view.Cast,
		MoreCast:         view.MoreCast,
		Similar:          view.Similar,
	}
	if view.SimilarErr != nil {
		resp.SimilarError = "Similar titles are unavailable."
	}
	for _, rv := range view.Reviews {
		resp.Reviews = append(resp.Reviews, reviewItem{
			ID:          rv.ID,
			Author:      rv.Author,
			Initials:    rv.Initials,
			Date:        rv.Date,
			Rating:      rv.Rating,
			Text:        rv.Excerpt.Text,
			IsTruncated: rv.Excerpt.IsTruncated,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (r *BrowseRouter) peopleHandler(c echo.Context) error {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil {
			page = p
		}
	}

	view, err := browse.People(c.Request().Context(), r.catalog, r.cache, page)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func (r *BrowseRouter) genresHandler(c echo.Context) error {
	fetch := r.catalog.Genres
	var (
		genres []domain.Genre
		err    error
	)
	if r.cache != nil {
		genres, err = cache.Fetch(c.Request().Context(), r.cache, cache.KindGenres, "all", fetch)
	} else {
		genres, err = fetch(c.Request().Context())
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, genres)
}
