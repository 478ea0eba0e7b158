// Package review clips long review texts into previews and validates review
// submissions before they reach the catalog API.
package review

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	// MaxParagraphs is the number of paragraphs kept in a preview.
	MaxParagraphs = 2
	// MaxChars is the preview length limit, in runes.
	MaxChars = 520
	// MinSafeBreak is the earliest rune index a word-boundary cut may use.
	MinSafeBreak = 200
)

var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// Excerpt is a length-bounded preview of a review text.
type Excerpt struct {
	Text        string `json:"text"`
	IsTruncated bool   `json:"isTruncated"`
}

// Preview keeps at most MaxParagraphs paragraphs and MaxChars runes of text.
// A long preview is cut at the last whitespace when that leaves at least
// MinSafeBreak runes, otherwise exactly at MaxChars.
func Preview(text string) Excerpt {
	normalized := strings.TrimRightFunc(text, unicode.IsSpace)
	preview := normalized

	if paragraphs := paragraphBreak.Split(normalized, -1); len(paragraphs) > MaxParagraphs {
		preview = strings.Join(paragraphs[:MaxParagraphs], "\n\n")
	}

	if runes := []rune(preview); len(runes) > MaxChars {
		clipped := runes[:MaxChars]
		cut := MaxChars
		if i := lastSpace(clipped); i >= MinSafeBreak {
			cut = i
		}
		preview = strings.TrimRightFunc(string(clipped[:cut]), unicode.IsSpace)
	}

	return Excerpt{
		Text:        preview,
		IsTruncated: len([]rune(preview)) < len([]rune(normalized)),
	}
}

func lastSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return -1
}

// Expander tracks which reviews the reader expanded to full length.
// The zero value is ready to use; it is not safe for concurrent use.
type Expander struct {
	expanded map[int64]bool
}

// Toggle flips the expand flag of a review and returns the new value.
func (e *Expander) Toggle(id int64) bool {
	if e.expanded == nil {
		e.expanded = make(map[int64]bool)
	}
	e.expanded[id] = !e.expanded[id]
	return e.expanded[id]
}

func (e *Expander) IsExpanded(id int64) bool {
	return e.expanded[id]
}

// Display returns the text to show for a review: the full text when
// expanded, the preview otherwise.
func (e *Expander) Display(id int64, text string) Excerpt {
	excerpt := Preview(text)
	if e.IsExpanded(id) {
		return Excerpt{Text: text, IsTruncated: excerpt.IsTruncated}
	}
	return excerpt
}
