package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var counts = message.NewPrinter(language.English)

// TitleType is the catalog entry kind. The empty value means any type.
type TitleType string

const (
	TitleTypeAny   TitleType = ""
	TitleTypeMovie TitleType = "MOVIE"
	TitleTypeTV    TitleType = "TV"
)

// ParseTitleType returns the type for a raw value, falling back to any.
func ParseTitleType(raw string) TitleType {
	switch TitleType(raw) {
	case TitleTypeMovie, TitleTypeTV:
		return TitleType(raw)
	default:
		return TitleTypeAny
	}
}

// Label returns the human readable name of the type.
func (t TitleType) Label() string {
	if t == TitleTypeTV {
		return "TV Show"
	}
	return "Movie"
}

// Sort is the listing order key.
type Sort string

const (
	SortNewest  Sort = "NEWEST"
	SortPopular Sort = "POPULAR"
	SortRating  Sort = "RATING"
)

// DefaultSort is used when no or an unknown sort key is given.
const DefaultSort = SortNewest

// ParseSort returns the sort for a raw value, falling back to DefaultSort.
func ParseSort(raw string) Sort {
	switch Sort(raw) {
	case SortNewest, SortPopular, SortRating:
		return Sort(raw)
	default:
		return DefaultSort
	}
}

// TitleSummary is a catalog entry as returned by listings.
type TitleSummary struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	PosterURL   *string   `json:"posterUrl,omitempty"`
	ReleaseDate *string   `json:"releaseDate,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	RatingCount *int      `json:"ratingCount,omitempty"`
	Type        TitleType `json:"type"`
}

// Year returns the release year, or an empty string when unknown.
func (t TitleSummary) Year() string {
	return releaseYear(t.ReleaseDate)
}

// HasRating reports whether the rating is backed by at least one vote.
func (t TitleSummary) HasRating() bool {
	return t.Rating != nil && t.RatingCount != nil && *t.RatingCount > 0
}

// RatingLabel formats the rating with one decimal, or "—" without votes.
func (t TitleSummary) RatingLabel() string {
	if !t.HasRating() {
		return "—"
	}
	return fmt.Sprintf("%.1f", *t.Rating)
}

// RatingCountLabel returns "1 rating" / "N ratings", or "" without votes.
func (t TitleSummary) RatingCountLabel() string {
	if !t.HasRating() {
		return ""
	}
	if *t.RatingCount == 1 {
		return "1 rating"
	}
	return counts.Sprintf("%d ratings", *t.RatingCount)
}

// Suggestion is the lightweight item returned by the suggestion query.
type Suggestion struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	PosterURL   *string   `json:"posterUrl,omitempty"`
	ReleaseDate *string   `json:"releaseDate,omitempty"`
	Type        TitleType `json:"type"`
}

// Caption returns "Movie • 1999" style secondary text.
func (s Suggestion) Caption() string {
	kind := "Movie"
	if s.Type == TitleTypeTV {
		kind = "TV series"
	}
	if year := releaseYear(s.ReleaseDate); year != "" {
		return kind + " • " + year
	}
	return kind
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	CharacterName *string `json:"characterName,omitempty"`
	ProfileURL    *string `json:"profileUrl,omitempty"`
}

// TitleDetail is the extended item returned by the detail query.
type TitleDetail struct {
	TitleSummary
	Overview       *string      `json:"overview,omitempty"`
	RuntimeMinutes *int         `json:"runtimeMinutes,omitempty"`
	SeasonCount    *int         `json:"seasonCount,omitempty"`
	Genres         []Genre      `json:"genres,omitempty"`
	Cast           []CastMember `json:"cast,omitempty"`
	RecentReviews  []Review     `json:"recentReviews,omitempty"`
}

// OverviewText returns the overview or a placeholder.
func (t TitleDetail) OverviewText() string {
	if t.Overview == nil || strings.TrimSpace(*t.Overview) == "" {
		return "No description available."
	}
	return *t.Overview
}

// LengthLabel returns the season count for shows and the runtime for movies.
func (t TitleDetail) LengthLabel() string {
	if t.Type == TitleTypeTV {
		if t.SeasonCount == nil || *t.SeasonCount == 0 {
			return "—"
		}
		return fmt.Sprintf("%d", *t.SeasonCount)
	}
	if t.RuntimeMinutes == nil || *t.RuntimeMinutes == 0 {
		return "—"
	}
	return fmt.Sprintf("%d min", *t.RuntimeMinutes)
}

// HomeSection is one titled row of the home screen.
type HomeSection struct {
	Title string         `json:"title"`
	Items []TitleSummary `json:"items"`
}

type HomeResponse struct {
	Sections           []HomeSection `json:"sections"`
	TotalCountEstimate int           `json:"totalCountEstimate"`
}

type Person struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ProfileURL *string `json:"profileUrl,omitempty"`
}

// SearchPayload is the filter tuple accepted by the listing query.
type SearchPayload struct {
	Query     string    `json:"query"`
	Type      TitleType `json:"type,omitempty"`
	YearFrom  *int      `json:"yearFrom,omitempty"`
	YearTo    *int      `json:"yearTo,omitempty"`
	GenreIDs  []int     `json:"genreIds,omitempty"`
	MinRating *float64  `json:"minRating,omitempty"`
	MaxRating *float64  `json:"maxRating,omitempty"`
	Sort      Sort      `json:"sort,omitempty"`
	Limit     int       `json:"limit"`
	Offset    int       `json:"offset"`
}

func releaseYear(date *string) string {
	if date == nil || len(*date) < 4 {
		return ""
	}
	return (*date)[:4]
}
