package review

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

// FormatDate renders a review timestamp as "Jan 2, 2006", or "Recently"
// when the value cannot be parsed.
func FormatDate(value string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return "Recently"
}

// Initials returns up to two upper-cased initials of a name, or "U".
func Initials(name *string) string {
	if name == nil {
		return "U"
	}

	var b strings.Builder
	for _, part := range strings.Split(*name, " ") {
		if part == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
		if utf8.RuneCountInString(b.String()) == 2 {
			break
		}
	}

	if b.Len() == 0 {
		return "U"
	}
	return b.String()
}
