package filter

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
	"github.com/DjordjeVuckovic/title-hunter/pkg/utils"
)

const (
	keyQuery     = "q"
	keyType      = "type"
	keySort      = "sort"
	keyYearFrom  = "yearFrom"
	keyYearTo    = "yearTo"
	keyGenre     = "genre"
	keyMinRating = "minRating"
	keyMaxRating = "maxRating"
	keyPage      = "page"
)

// Sync holds the filter state of one screen and the query parameters it does
// not own. It is not safe for concurrent use.
type Sync struct {
	state     State
	extra     url.Values
	fixedType *domain.TitleType
}

type Option func(*Sync)

// WithFixedType pins the title type. The type is then neither read from nor
// written to the query string.
func WithFixedType(t domain.TitleType) Option {
	return func(s *Sync) {
		s.fixedType = &t
	}
}

// Parse reads the filter state from query parameters. Unknown type and sort
// values fall back to their defaults; malformed numbers are ignored.
func Parse(values url.Values, opts ...Option) *Sync {
	s := &Sync{state: Default(), extra: url.Values{}}
	for _, opt := range opts {
		opt(s)
	}

	for key, vals := range values {
		if !s.owns(key) {
			s.extra[key] = append([]string(nil), vals...)
		}
	}

	st := &s.state
	st.Query = values.Get(keyQuery)
	st.Sort = domain.ParseSort(values.Get(keySort))
	if s.fixedType != nil {
		st.Type = *s.fixedType
	} else {
		st.Type = domain.ParseTitleType(values.Get(keyType))
	}
	st.YearFrom = parseInt(values.Get(keyYearFrom))
	st.YearTo = parseInt(values.Get(keyYearTo))
	st.GenreID = parseInt(values.Get(keyGenre))
	st.MinRating = parseRating(values.Get(keyMinRating))
	st.MaxRating = parseRating(values.Get(keyMaxRating))
	if p := parseInt(values.Get(keyPage)); p != nil && *p > 1 {
		st.Page = *p
	}

	return s
}

// State returns a copy of the current filters.
func (s *Sync) State() State {
	return s.state.clone()
}

// Edit applies a change to the filters. When anything other than the page
// changed, the page goes back to 1. It reports whether the state changed.
func (s *Sync) Edit(fn func(*State)) bool {
	before := s.state.clone()
	next := s.state.clone()
	fn(&next)

	if s.fixedType != nil {
		next.Type = *s.fixedType
	}
	if next.Page < 1 {
		next.Page = 1
	}
	if !next.sameFilters(before) {
		next.Page = 1
	}

	s.state = next
	return !next.sameFilters(before) || next.Page != before.Page
}

// GoTo moves to another page without touching the other filters.
func (s *Sync) GoTo(page int) {
	s.state.Page = max(1, page)
}

// Apply returns the query parameters for the current state: the parameters
// Sync does not own unchanged, plus every owned field that is set.
func (s *Sync) Apply() url.Values {
	out := url.Values{}
	for key, vals := range s.extra {
		out[key] = append([]string(nil), vals...)
	}

	st := s.state
	if q := strings.TrimSpace(st.Query); q != "" {
		out.Set(keyQuery, q)
	}
	if s.fixedType == nil && st.Type != domain.TitleTypeAny {
		out.Set(keyType, string(st.Type))
	}
	if st.Sort != "" && st.Sort != domain.DefaultSort {
		out.Set(keySort, string(st.Sort))
	}
	setInt(out, keyYearFrom, st.YearFrom)
	setInt(out, keyYearTo, st.YearTo)
	setInt(out, keyGenre, st.GenreID)
	setFloat(out, keyMinRating, st.MinRating)
	setFloat(out, keyMaxRating, st.MaxRating)
	if st.Page > 1 {
		out.Set(keyPage, strconv.Itoa(st.Page))
	}
	return out
}

// Encode is Apply rendered as a query string.
func (s *Sync) Encode() string {
	return s.Apply().Encode()
}

func (s *Sync) owns(key string) bool {
	switch key {
	case keyQuery, keySort, keyYearFrom, keyYearTo, keyGenre, keyMinRating, keyMaxRating, keyPage:
		return true
	case keyType:
		return s.fixedType == nil
	default:
		return false
	}
}

func parseInt(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func parseRating(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	v = utils.RoundDecimal(v, 1)
	return &v
}

func setInt(values url.Values, key string, v *int) {
	if v != nil {
		values.Set(key, strconv.Itoa(*v))
	}
}

func setFloat(values url.Values, key string, v *float64) {
	if v != nil {
		values.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}
