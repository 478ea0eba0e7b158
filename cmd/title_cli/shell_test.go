package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
)

func runScript(t *testing.T, f *fakeCatalog, lines ...string) string {
	t.Helper()
	a, out := newTestApp(f)
	err := runShell(context.Background(), a, strings.NewReader(strings.Join(lines, "\n")+"\n"))
	require.NoError(t, err)
	return out.String()
}

func TestShellSignInAndReview(t *testing.T) {
	f := newFakeCatalog(3)
	f.details[1] = sampleDetail(1, 2)

	out := runScript(t, f,
		"whoami",
		"login ada@example.com",
		" secret-pass",
		"whoami",
		"title 1",
		"review 9   Great film  ",
		"logout",
		"whoami",
		"quit",
	)

	assert.Contains(t, out, "Not signed in.")
	assert.Contains(t, out, "Signed in as Ada.")
	assert.Contains(t, out, "Review saved. Thanks for sharing!")
	assert.Contains(t, out, "Great film")
	assert.Contains(t, out, "Signed out.")

	posted := f.postedReviews()
	require.Len(t, posted, 1)
	assert.Equal(t, domain.ReviewPayload{Rating: 9, Review: "Great film"}, posted[0])
}

func TestShellWrongPassword(t *testing.T) {
	out := runScript(t, newFakeCatalog(1), "login ada@example.com", "nope", "quit")
	assert.Contains(t, out, "Invalid email or password.")
}

func TestShellSignupConflict(t *testing.T) {
	out := runScript(t, newFakeCatalog(1), "signup ada@example.com Ada Lovelace", "long-enough-pass", "quit")
	assert.Contains(t, out, "That email is already registered. Try signing in instead.")
}

func TestShellReviewWaitsForSessionProbe(t *testing.T) {
	f := newFakeCatalog(1)
	f.details[1] = sampleDetail(1, 1)
	name := "Ada"
	f.me = &domain.User{Name: &name}
	f.meDelay = 50 * time.Millisecond

	out := runScript(t, f, "title 1", "review 8 Solid", "quit")

	assert.Contains(t, out, "Review saved. Thanks for sharing!")
	assert.NotContains(t, out, "Sign in to leave a review.")
	require.Len(t, f.postedReviews(), 1)
}

func TestShellReviewNeedsSession(t *testing.T) {
	f := newFakeCatalog(1)
	f.details[1] = sampleDetail(1, 1)

	out := runScript(t, f, "review 8 nice", "title 1", "review 8 nice", "quit")

	assert.Contains(t, out, `Open a title first with "title <id>".`)
	assert.Contains(t, out, "Sign in to leave a review.")
	assert.Empty(t, f.postedReviews())
}

func TestShellFiltersAndPaging(t *testing.T) {
	f := newFakeCatalog(60)

	out := runScript(t, f,
		"search story",
		"filter type=TV",
		"next",
		"filter type=",
		"prev",
		"quit",
	)

	assert.Contains(t, out, `Results for "story"`)
	assert.Contains(t, out, "30 results")

	last := f.lastSearch()
	assert.Equal(t, "story", last.Query)
	assert.Equal(t, domain.TitleTypeAny, last.Type)
	assert.Equal(t, 0, last.Offset)
}

func TestShellFilterPageReset(t *testing.T) {
	f := newFakeCatalog(60)

	runScript(t, f, "page 3", "filter sort=RATING", "quit")

	last := f.lastSearch()
	assert.Equal(t, domain.SortRating, last.Sort)
	assert.Equal(t, 0, last.Offset)
}

func TestShellInvalidInput(t *testing.T) {
	out := runScript(t, newFakeCatalog(1),
		"bogus",
		"page x",
		"filter year",
		"filter yearFrom=1800",
		"title abc",
		"",
		"exit",
	)

	assert.Contains(t, out, `Unknown command "bogus".`)
	assert.Contains(t, out, "Usage: page <n>")
	assert.Contains(t, out, `Expected key=value, got "year"`)
	assert.Contains(t, out, "Year must be between 1950 and 2030.")
	assert.Contains(t, out, `invalid title id "abc"`)
}

func TestShellEndsOnEOF(t *testing.T) {
	a, out := newTestApp(newFakeCatalog(1))
	require.NoError(t, runShell(context.Background(), a, strings.NewReader("help")))
	assert.Contains(t, out.String(), "Commands:")
}
