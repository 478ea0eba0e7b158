// Package filter keeps the browse screen filters in sync with URL query
// parameters.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/DjordjeVuckovic/title-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
	"github.com/DjordjeVuckovic/title-hunter/pkg/pagination"
)

// Year bounds accepted by the year filters.
const (
	MinYear = 1950
	MaxYear = 2030
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// State is the set of filters of a browse screen. Nil pointers and empty
// strings mean the filter is not set.
type State struct {
	Query     string           `validate:"max=200"`
	Type      domain.TitleType `validate:"omitempty,oneof=MOVIE TV"`
	YearFrom  *int             `validate:"omitempty,min=1950,max=2030"`
	YearTo    *int             `validate:"omitempty,min=1950,max=2030"`
	GenreID   *int             `validate:"omitempty,min=1"`
	MinRating *float64         `validate:"omitempty,min=0,max=10"`
	MaxRating *float64         `validate:"omitempty,min=0,max=10"`
	Sort      domain.Sort      `validate:"oneof=NEWEST POPULAR RATING"`
	Page      int              `validate:"min=1"`
}

// Default returns the state of a screen opened without query parameters.
func Default() State {
	return State{Sort: domain.DefaultSort, Page: 1}
}

// Validate checks field ranges and range ordering.
func (s State) Validate() error {
	if err := validate.Struct(s); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return apperr.NewValidationWrap(fieldMessage(fieldErrs[0]), err)
		}
		return apperr.NewValidationWrap("Invalid filters", err)
	}

	if s.YearFrom != nil && s.YearTo != nil && *s.YearFrom > *s.YearTo {
		return apperr.NewValidation("Year from must not be after year to.")
	}
	if s.MinRating != nil && s.MaxRating != nil && *s.MinRating > *s.MaxRating {
		return apperr.NewValidation("Minimum rating must not exceed maximum rating.")
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "YearFrom", "YearTo":
		return fmt.Sprintf("Year must be between %d and %d.", MinYear, MaxYear)
	case "MinRating", "MaxRating":
		return "Rating must be between 0 and 10."
	case "GenreID":
		return "Unknown genre."
	case "Page":
		return "Page must be at least 1."
	case "Query":
		return "Search text is too long."
	default:
		return "Invalid " + strings.ToLower(fe.Field()) + "."
	}
}

// Payload builds the listing query body for the state's page.
func (s State) Payload(pageSize int) domain.SearchPayload {
	req := pagination.NewOffsetRequest(s.Page, pageSize)

	payload := domain.SearchPayload{
		Query:     strings.TrimSpace(s.Query),
		Type:      s.Type,
		YearFrom:  s.YearFrom,
		YearTo:    s.YearTo,
		MinRating: s.MinRating,
		MaxRating: s.MaxRating,
		Sort:      s.Sort,
		Limit:     req.Limit(),
		Offset:    req.Offset(),
	}
	if s.GenreID != nil {
		payload.GenreIDs = []int{*s.GenreID}
	}
	return payload
}

// Heading returns the title shown above the results.
func (s State) Heading() string {
	if q := strings.TrimSpace(s.Query); q != "" {
		return `Results for "` + q + `"`
	}
	switch s.Type {
	case domain.TitleTypeMovie:
		return "Browse Movies"
	case domain.TitleTypeTV:
		return "Browse TV Shows"
	default:
		return "Browse Movies and TV Shows"
	}
}

func (s State) sameFilters(o State) bool {
	return s.Query == o.Query &&
		s.Type == o.Type &&
		s.Sort == o.Sort &&
		equalPtr(s.YearFrom, o.YearFrom) &&
		equalPtr(s.YearTo, o.YearTo) &&
		equalPtr(s.GenreID, o.GenreID) &&
		equalPtr(s.MinRating, o.MinRating) &&
		equalPtr(s.MaxRating, o.MaxRating)
}

func (s State) clone() State {
	c := s
	c.YearFrom = clonePtr(s.YearFrom)
	c.YearTo = clonePtr(s.YearTo)
	c.GenreID = clonePtr(s.GenreID)
	c.MinRating = clonePtr(s.MinRating)
	c.MaxRating = clonePtr(s.MaxRating)
	return c
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
