package resultset

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Label returns the result count line shown next to the filters.
func Label[T any](s *Set[T], loading bool) string {
	switch {
	case loading:
		return "Loading…"
	case s == nil:
		return "0 results"
	case s.Total == nil:
		return printer.Sprintf("%d results", len(s.Items))
	case s.TotalCapped:
		return printer.Sprintf("%d+ results", *s.Total)
	default:
		return printer.Sprintf("%d results", *s.Total)
	}
}
