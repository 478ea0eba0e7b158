package token

import (
	"unicode"
	"unicode/utf8"
)

// PhraseTokenizer splits a free-text search phrase on whitespace runs.
// With more than one token, exact duplicates are dropped keeping the first
// occurrence. Case variants are distinct tokens.
type PhraseTokenizer struct{}

func NewPhraseTokenizer() *PhraseTokenizer {
	return &PhraseTokenizer{}
}

// Tokenize converts the input phrase into a slice of Tokens.
// Example: Input: `  star  Wars star wars ` -> [star Wars wars]
func (t *PhraseTokenizer) Tokenize(input string) []Token {
	var tokens []Token

	start := -1
	for i, r := range input {
		if unicode.IsSpace(r) {
			if start >= 0 {
				tokens = append(tokens, Token{Value: input[start:i], Pos: start})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, Token{Value: input[start:], Pos: start})
	}

	if len(tokens) <= 1 {
		return tokens
	}
	return dedupe(tokens)
}

func dedupe(tokens []Token) []Token {
	seen := make(map[string]struct{}, len(tokens))
	unique := tokens[:0]
	for _, tok := range tokens {
		if _, ok := seen[tok.Value]; ok {
			continue
		}
		seen[tok.Value] = struct{}{}
		unique = append(unique, tok)
	}
	return unique
}

// IsBlank reports whether the phrase holds no tokens at all.
func IsBlank(input string) bool {
	for len(input) > 0 {
		r, size := utf8.DecodeRuneInString(input)
		if !unicode.IsSpace(r) {
			return false
		}
		input = input[size:]
	}
	return true
}
