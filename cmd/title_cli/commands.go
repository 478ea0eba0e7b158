package main

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DjordjeVuckovic/title-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/title-hunter/internal/browse"
	"github.com/DjordjeVuckovic/title-hunter/internal/cache"
	"github.com/DjordjeVuckovic/title-hunter/internal/filter"
)

// searchFlagKeys maps search flags to the query parameters they set.
var searchFlagKeys = []struct{ flag, key string }{
	{"type", "type"},
	{"sort", "sort"},
	{"year-from", "yearFrom"},
	{"year-to", "yearTo"},
	{"genre", "genre"},
	{"min-rating", "minRating"},
	{"max-rating", "maxRating"},
	{"page", "page"},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "List titles matching a query and filters",
	Long: `Lists one page of titles. Every flag maps to a browse filter.

Example:
  titles search matrix --type MOVIE --year-from 1995 --sort RATING
  titles search --genre 18 --min-rating 7.5 --page 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		return runSearch(ctx, current, searchValues(cmd, args))
	},
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [text]",
	Short: "Show quick suggestions for a partial query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		return runSuggest(ctx, current, strings.Join(args, " "))
	},
}

var titleCmd = &cobra.Command{
	Use:   "title [id]",
	Short: "Show one title in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		allCast, _ := cmd.Flags().GetBool("all-cast")

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		return runTitle(ctx, current, id, allCast)
	},
}

var peopleCmd = &cobra.Command{
	Use:   "people [page]",
	Short: "List people in the catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page := 1
		if len(args) == 1 {
			p, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid page %q", args[0])
			}
			page = p
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		return runPeople(ctx, current, page)
	},
}

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the home screen sections",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		return runHome(ctx, current)
	},
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	Long: `Starts a shell that keeps one browse screen, one detail screen and the
signed-in session. Type "help" inside the shell for its commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd.Context(), current, cmd.InOrStdin())
	},
}

func bindSearchFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("type", "", "Title type: MOVIE or TV")
	f.String("sort", "", "Sort order: NEWEST, POPULAR or RATING")
	f.Int("year-from", 0, "Earliest release year")
	f.Int("year-to", 0, "Latest release year")
	f.Int("genre", 0, "Genre id")
	f.Float64("min-rating", 0, "Minimum rating (0-10)")
	f.Float64("max-rating", 0, "Maximum rating (0-10)")
	f.Int("page", 1, "Page number")
}

// searchValues turns the arguments and the flags set by the user into
// browse query parameters.
func searchValues(cmd *cobra.Command, args []string) url.Values {
	values := url.Values{}
	if q := strings.TrimSpace(strings.Join(args, " ")); q != "" {
		values.Set("q", q)
	}
	for _, fk := range searchFlagKeys {
		f := cmd.Flags().Lookup(fk.flag)
		if f != nil && f.Changed {
			values.Set(fk.key, f.Value.String())
		}
	}
	return values
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NewValidation(fmt.Sprintf("invalid title id %q", raw))
	}
	return id, nil
}

func runSearch(ctx context.Context, a *app, values url.Values) error {
	screen := browse.NewScreen(ctx, a.catalog, filter.Parse(values), a.browseOptions()...)
	defer screen.Close()

	r := newRenderer(a.out)
	if err := screen.Load(); err != nil {
		return r.report(err)
	}

	v, err := screen.Wait(ctx)
	if err != nil && v.Err == nil {
		return r.report(err)
	}
	r.listing(v)
	return reported(err)
}

func runSuggest(ctx context.Context, a *app, query string) error {
	views, err := browse.Suggestions(ctx, a.catalog, a.cache, query)
	r := newRenderer(a.out)
	if err != nil {
		return r.report(err)
	}
	r.suggestions(views)
	return nil
}

func runTitle(ctx context.Context, a *app, id int64, allCast bool) error {
	screen := browse.NewDetailScreen(ctx, a.catalog, a.browseOptions()...)
	defer screen.Close()

	r := newRenderer(a.out)
	if err := screen.Open(id); err != nil {
		return r.report(err)
	}
	v, err := screen.Wait(ctx)
	if err != nil {
		return r.report(err)
	}
	if allCast {
		screen.ToggleCast()
		v = screen.View()
	}
	r.detail(v)
	return nil
}

func runPeople(ctx context.Context, a *app, page int) error {
	v, err := browse.People(ctx, a.catalog, a.cache, page)
	r := newRenderer(a.out)
	if err != nil {
		return r.report(err)
	}
	r.people(v)
	return nil
}

func runHome(ctx context.Context, a *app) error {
	home, err := cache.Fetch(ctx, a.cache, cache.KindHome, "home", a.catalog.Home)
	r := newRenderer(a.out)
	if err != nil {
		return r.report(err)
	}
	r.home(home)
	return nil
}
