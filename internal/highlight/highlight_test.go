package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		query string
		want  []Span
	}{
		{
			name:  "empty query",
			text:  "The Matrix",
			query: "   ",
			want:  []Span{{Text: "The Matrix"}},
		},
		{
			name:  "no match",
			text:  "The Matrix",
			query: "alien",
			want:  []Span{{Text: "The Matrix"}},
		},
		{
			name:  "case insensitive",
			text:  "The Matrix",
			query: "matrix",
			want:  []Span{{Text: "The "}, {Text: "Matrix", Matched: true}},
		},
		{
			name:  "prefix at word start",
			text:  "Stargate",
			query: "star",
			want:  []Span{{Text: "Star", Matched: true}, {Text: "gate"}},
		},
		{
			name:  "no match inside a word",
			text:  "Lodestar",
			query: "star",
			want:  []Span{{Text: "Lodestar"}},
		},
		{
			name:  "longest token wins",
			text:  "ab",
			query: "a ab",
			want:  []Span{{Text: "ab", Matched: true}},
		},
		{
			name:  "multiple tokens in order",
			text:  "Star Wars: The Empire Strikes Back",
			query: "back star",
			want: []Span{
				{Text: "Star", Matched: true},
				{Text: " Wars: The Empire Strikes "},
				{Text: "Back", Matched: true},
			},
		},
		{
			name:  "regex metacharacters are literal",
			text:  "C++ (2024)",
			query: "(2024)",
			want:  []Span{{Text: "C++ (2024)"}},
		},
		{
			name:  "dot is not a wildcard",
			text:  "Mr. Robot and Mrs Robot",
			query: "mr.",
			want:  []Span{{Text: "Mr.", Matched: true}, {Text: " Robot and Mrs Robot"}},
		},
		{
			name:  "repeated occurrences",
			text:  "Up up and away",
			query: "up",
			want: []Span{
				{Text: "Up", Matched: true},
				{Text: " "},
				{Text: "up", Matched: true},
				{Text: " and away"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.text, tt.query))
		})
	}
}

func TestMatch_LosslessPartition(t *testing.T) {
	texts := []string{
		"",
		"The Lord of the Rings: The Return of the King",
		"  leading and trailing  ",
		"ÉLÉGIE élégie",
		"a-b_c a.b",
		"Ааа ааа",
		"x",
		"x\xffstar",
		"\xff\xfe",
	}
	queries := []string{"", "the", "THE the", "of rings king", "a ab abc", "é", "élégie", "b_c", ".", "ааа", "x y x", "star \xff", "\xc3"}

	for _, text := range texts {
		for _, query := range queries {
			spans := Match(text, query)
			require.NotEmpty(t, spans)
			assert.Equal(t, text, Text(spans), "text=%q query=%q", text, query)
		}
	}
}

func TestMatch_InvalidUTF8Query(t *testing.T) {
	assert.Equal(t, []Span{{Text: "x\xff"}, {Text: "star", Matched: true}}, Match("x\xffstar", "star \xff"))
	assert.Equal(t, []Span{{Text: "Star Wars"}}, Match("Star Wars", "\xff"))
}

func TestMatch_MatchedRunsEqualTokens(t *testing.T) {
	query := "the king rings"
	for _, s := range Match("The Return of the King of Rings", query) {
		if !s.Matched {
			continue
		}
		lowered := strings.ToLower(s.Text)
		assert.Contains(t, []string{"the", "king", "rings"}, lowered)
	}
}

func TestRender(t *testing.T) {
	spans := Match("Blade Runner", "runner")
	got := Render(spans, func(s string) string { return "[" + s + "]" })
	assert.Equal(t, "Blade [Runner]", got)
	assert.True(t, HasMatch(spans))
	assert.Equal(t, "Blade Runner", Render(spans, nil))
}
