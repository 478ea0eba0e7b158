// Package highlight marks the runs of a text that match the tokens of a
// search phrase.
package highlight

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/DjordjeVuckovic/title-hunter/internal/token"
)

// Span is one run of a partitioned text.
type Span struct {
	Text    string `json:"text"`
	Matched bool   `json:"matched,omitempty"`
}

// Matcher partitions texts against search phrases.
type Matcher struct {
	tokenizer token.Tokenizer
}

func NewMatcher(tokenizer token.Tokenizer) *Matcher {
	if tokenizer == nil {
		tokenizer = token.NewPhraseTokenizer()
	}
	return &Matcher{tokenizer: tokenizer}
}

var defaultMatcher = NewMatcher(nil)

// Match partitions text with the default phrase tokenizer.
func Match(text, query string) []Span {
	return defaultMatcher.Match(text, query)
}

// Match partitions text into ordered, non-overlapping spans. Concatenating
// the span texts always reproduces text.
//
// Matching is case-insensitive and anchored at a word boundary before each
// token. When several tokens could match at the same position the longest
// one wins. Tokens that are not valid UTF-8 never match.
func (m *Matcher) Match(text, query string) []Span {
	tokens := slices.DeleteFunc(m.tokenizer.Tokenize(query), func(tok token.Token) bool {
		return !utf8.ValidString(tok.Value)
	})
	if len(tokens) == 0 {
		return []Span{{Text: text}}
	}

	pattern, err := compile(tokens)
	if err != nil {
		return []Span{{Text: text}}
	}
	locs := pattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Span{{Text: text}}
	}

	lowered := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		lowered[strings.ToLower(tok.Value)] = struct{}{}
	}
	isToken := func(s string) bool {
		_, ok := lowered[strings.ToLower(s)]
		return ok
	}

	spans := make([]Span, 0, 2*len(locs)+1)
	appendRun := func(s string) {
		if s == "" {
			return
		}
		spans = append(spans, Span{Text: s, Matched: isToken(s)})
	}

	last := 0
	for _, loc := range locs {
		appendRun(text[last:loc[0]])
		appendRun(text[loc[0]:loc[1]])
		last = loc[1]
	}
	appendRun(text[last:])

	return spans
}

func compile(tokens []token.Token) (*regexp.Regexp, error) {
	sorted := slices.Clone(tokens)
	slices.SortStableFunc(sorted, func(a, b token.Token) int {
		return b.Len() - a.Len()
	})

	escaped := make([]string, len(sorted))
	for i, tok := range sorted {
		escaped[i] = regexp.QuoteMeta(tok.Value)
	}

	// RE2 alternation is leftmost-first, so the length ordering decides
	// which token wins at a shared position.
	return regexp.Compile(`(?i)\b(?:` + strings.Join(escaped, "|") + `)`)
}

// HasMatch reports whether any span matched.
func HasMatch(spans []Span) bool {
	for _, s := range spans {
		if s.Matched {
			return true
		}
	}
	return false
}

// Text joins the spans back into the original text.
func Text(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Render joins the spans, passing matched runs through mark.
func Render(spans []Span, mark func(string) string) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Matched && mark != nil {
			b.WriteString(mark(s.Text))
			continue
		}
		b.WriteString(s.Text)
	}
	return b.String()
}
