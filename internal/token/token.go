package token

import "unicode/utf8"

// Token is a whitespace-delimited unit of a search phrase.
// Pos is the byte offset of the token in the tokenized input.
type Token struct {
	Value string
	Pos   int
}

// Len returns the token length in runes.
func (t Token) Len() int {
	return utf8.RuneCountInString(t.Value)
}

// Values returns the literal values of tokens in order.
func Values(tokens []Token) []string {
	values := make([]string, len(tokens))
	for i, tok := range tokens {
		values[i] = tok.Value
	}
	return values
}
