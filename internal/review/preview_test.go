package review

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestPreview_ShortTextUnchanged(t *testing.T) {
	texts := []string{
		"",
		"Loved it.",
		"First paragraph.\n\nSecond paragraph.",
		"Line one\nline two",
		strings.Repeat("a", MaxChars),
	}
	for _, text := range texts {
		got := Preview(text)
		assert.Equal(t, text, got.Text)
		assert.False(t, got.IsTruncated)
	}
}

func TestPreview_HardCutWithoutSafeBreak(t *testing.T) {
	text := strings.Repeat("x", 600)

	got := Preview(text)

	assert.Equal(t, MaxChars, utf8.RuneCountInString(got.Text))
	assert.True(t, got.IsTruncated)
}

func TestPreview_CutsAtLastWhitespace(t *testing.T) {
	text := strings.Repeat("x", 510) + " " + strings.Repeat("y", 89)
	assert.Len(t, text, 600)

	got := Preview(text)

	assert.Equal(t, strings.Repeat("x", 510), got.Text)
	assert.True(t, got.IsTruncated)
}

func TestPreview_BreakBeforeSafeIndexIsIgnored(t *testing.T) {
	text := strings.Repeat("x", 150) + " " + strings.Repeat("y", 449)

	got := Preview(text)

	assert.Equal(t, MaxChars, utf8.RuneCountInString(got.Text))
	assert.True(t, strings.HasPrefix(got.Text, strings.Repeat("x", 150)+" y"))
}

func TestPreview_BreakAtSafeIndexIsUsed(t *testing.T) {
	text := strings.Repeat("x", MinSafeBreak) + " " + strings.Repeat("y", 399)

	got := Preview(text)

	assert.Equal(t, strings.Repeat("x", MinSafeBreak), got.Text)
}

func TestPreview_ParagraphLimit(t *testing.T) {
	text := "One.\n\nTwo.\n\n\n\nThree.\n\nFour."

	got := Preview(text)

	assert.Equal(t, "One.\n\nTwo.", got.Text)
	assert.True(t, got.IsTruncated)
}

func TestPreview_ParagraphsCollapseToDoubleNewline(t *testing.T) {
	text := "One.\n\n\n\nTwo.\n\n\nThree."

	got := Preview(text)

	assert.Equal(t, "One.\n\nTwo.", got.Text)
}

func TestPreview_TrailingWhitespaceIgnored(t *testing.T) {
	got := Preview("Fine film.\n\n   \t")

	assert.Equal(t, "Fine film.", got.Text)
	assert.False(t, got.IsTruncated)
}

func TestPreview_CountsRunes(t *testing.T) {
	text := strings.Repeat("é", MaxChars)

	got := Preview(text)

	assert.Equal(t, text, got.Text)
	assert.False(t, got.IsTruncated)
}

func TestPreview_Deterministic(t *testing.T) {
	text := strings.Repeat("word ", 200)
	assert.Equal(t, Preview(text), Preview(text))
}

func TestExpander(t *testing.T) {
	var e Expander
	long := strings.Repeat("x", 600)

	assert.False(t, e.IsExpanded(7))
	assert.Equal(t, MaxChars, utf8.RuneCountInString(e.Display(7, long).Text))

	assert.True(t, e.Toggle(7))
	shown := e.Display(7, long)
	assert.Equal(t, long, shown.Text)
	assert.True(t, shown.IsTruncated)

	assert.False(t, e.Toggle(7))
	assert.False(t, e.IsExpanded(8))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Mar 4, 2024", FormatDate("2024-03-04T10:15:00"))
	assert.Equal(t, "Mar 4, 2024", FormatDate("2024-03-04T10:15:00Z"))
	assert.Equal(t, "Mar 4, 2024", FormatDate("2024-03-04T10:15:00.123456"))
	assert.Equal(t, "Recently", FormatDate("yesterday"))
}

func TestInitials(t *testing.T) {
	name := func(s string) *string { return &s }

	assert.Equal(t, "U", Initials(nil))
	assert.Equal(t, "U", Initials(name("   ")))
	assert.Equal(t, "AL", Initials(name("ada  lovelace byron")))
	assert.Equal(t, "Č", Initials(name("čedomir")))
}
