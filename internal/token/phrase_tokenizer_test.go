package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhraseTokenizer_Tokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: []string{}},
		{name: "only whitespace", input: " \t\n ", want: []string{}},
		{name: "single token", input: "  matrix ", want: []string{"matrix"}},
		{name: "whitespace runs", input: "the\t\tdark   knight", want: []string{"the", "dark", "knight"}},
		{name: "exact duplicates collapse", input: "star wars star", want: []string{"star", "wars"}},
		{name: "case variants kept", input: "Star star STAR", want: []string{"Star", "star", "STAR"}},
		{name: "first seen order", input: "b a b c a", want: []string{"b", "a", "c"}},
	}

	tokenizer := NewPhraseTokenizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Values(tokenizer.Tokenize(tt.input))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPhraseTokenizer_Positions(t *testing.T) {
	tokens := NewPhraseTokenizer().Tokenize(" ab  cd")
	assert.Equal(t, []Token{{Value: "ab", Pos: 1}, {Value: "cd", Pos: 5}}, tokens)
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("  \t"))
	assert.False(t, IsBlank(" x "))
}
