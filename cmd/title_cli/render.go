package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/DjordjeVuckovic/title-hunter/internal/browse"
	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
	"github.com/DjordjeVuckovic/title-hunter/internal/highlight"
	"github.com/DjordjeVuckovic/title-hunter/pkg/pagination"
)

var counts = message.NewPrinter(language.English)

type styles struct {
	Heading lipgloss.Style
	Muted   lipgloss.Style
	Match   lipgloss.Style
	Current lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Rating  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E6EDF3")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#8B949E")),
		Match:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F2CC60")),
		Current: lipgloss.NewStyle().Bold(true).Reverse(true),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F85149")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#3FB950")),
		Rating:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F2CC60")),
	}
}

type renderer struct {
	w  io.Writer
	st styles
}

func newRenderer(w io.Writer) *renderer {
	return &renderer{w: w, st: defaultStyles()}
}

func (r *renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *renderer) highlighted(text, query string) string {
	return highlight.Render(highlight.Match(text, query), func(s string) string { return r.st.Match.Render(s) })
}

func (r *renderer) listing(v browse.View) {
	r.printf("%s  %s\n", r.st.Heading.Render(v.Heading), r.st.Muted.Render(v.Label))
	if v.Err != nil {
		r.printf("%s\n", r.st.Error.Render(errorText(v.Err)))
	}
	if len(v.Items) == 0 && v.Err == nil {
		r.printf("%s\n", r.st.Muted.Render("No titles match these filters."))
	}
	for _, t := range v.Items {
		r.printf("  %-8d %s %s  %s\n",
			t.ID,
			r.highlighted(t.Title, v.Query),
			r.st.Muted.Render(meta(t)),
			r.st.Rating.Render("★ "+t.RatingLabel()),
		)
	}
	r.strip(v.Window)
}

func meta(t domain.TitleSummary) string {
	parts := []string{t.Type.Label()}
	if y := t.Year(); y != "" {
		parts = append(parts, y)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// strip renders the page strip, e.g. "‹ 1 … 4 [5] 6 … 12 ›".
func (r *renderer) strip(w pagination.Window) {
	if w.TotalPages <= 1 {
		return
	}
	parts := make([]string, 0, len(w.Strip)+2)
	if w.HasPrev() {
		parts = append(parts, "‹")
	}
	for _, e := range w.Strip {
		switch {
		case e.Ellipsis:
			parts = append(parts, "…")
		case e.Page == w.CurrentPage:
			parts = append(parts, r.st.Current.Render("["+strconv.Itoa(e.Page)+"]"))
		default:
			parts = append(parts, strconv.Itoa(e.Page))
		}
	}
	if w.HasNext() {
		parts = append(parts, "›")
	}
	r.printf("%s\n", strings.Join(parts, " "))
}

func (r *renderer) suggestions(views []browse.SuggestionView) {
	if len(views) == 0 {
		r.printf("%s\n", r.st.Muted.Render("No suggestions."))
		return
	}
	for _, s := range views {
		r.printf("  %-8d %s  %s\n", s.ID, highlight.Render(s.Spans, func(s string) string { return r.st.Match.Render(s) }), r.st.Muted.Render(s.Caption))
	}
}

func (r *renderer) detail(v browse.DetailView) {
	if v.Err != nil {
		r.printf("%s\n", r.st.Error.Render(errorText(v.Err)))
		return
	}
	d := v.Detail
	if d == nil {
		return
	}

	r.printf("%s  %s\n", r.st.Heading.Render(d.Title), r.st.Muted.Render(meta(d.TitleSummary)))
	rating := "★ " + d.RatingLabel()
	if label := d.RatingCountLabel(); label != "" {
		rating += " · " + label
	}
	lengthName := "Runtime"
	if d.Type == domain.TitleTypeTV {
		lengthName = "Seasons"
	}
	r.printf("%s  %s: %s\n", r.st.Rating.Render(rating), lengthName, d.LengthLabel())
	if len(d.Genres) > 0 {
		names := make([]string, 0, len(d.Genres))
		for _, g := range d.Genres {
			names = append(names, g.Name)
		}
		r.printf("%s\n", r.st.Muted.Render(strings.Join(names, " · ")))
	}
	r.printf("\n%s\n", d.OverviewText())

	if len(v.Cast) > 0 {
		r.printf("\n%s\n", r.st.Heading.Render("Cast"))
		for _, c := range v.Cast {
			line := "  " + c.Name
			if c.CharacterName != nil && *c.CharacterName != "" {
				line += r.st.Muted.Render(" as " + *c.CharacterName)
			}
			r.printf("%s\n", line)
		}
		if v.MoreCast > 0 {
			r.printf("%s\n", r.st.Muted.Render(fmt.Sprintf("  Show more (%d)", v.MoreCast)))
		}
	}

	r.printf("\n%s\n", r.st.Heading.Render("Recent reviews"))
	if len(v.Reviews) == 0 {
		r.printf("%s\n", r.st.Muted.Render("  No reviews yet."))
	}
	for _, rv := range v.Reviews {
		r.printf("  [%s] %s  %s  %s\n", rv.Initials, rv.Author, r.st.Rating.Render(fmt.Sprintf("%d/10", rv.Rating)), r.st.Muted.Render(rv.Date))
		for _, line := range strings.Split(rv.Excerpt.Text, "\n") {
			r.printf("    %s\n", line)
		}
		if rv.Excerpt.IsTruncated {
			r.printf("%s\n", r.st.Muted.Render(fmt.Sprintf("    expand %d to read more", rv.ID)))
		}
	}

	if v.SimilarErr != nil {
		r.printf("\n%s\n", r.st.Muted.Render("Similar titles are unavailable."))
	} else if len(v.Similar) > 0 {
		r.printf("\n%s\n", r.st.Heading.Render("More like this"))
		for _, s := range v.Similar {
			r.printf("  %-8d %s %s\n", s.ID, s.Title, r.st.Muted.Render(meta(s)))
		}
	}
}

func (r *renderer) people(v browse.PeopleView) {
	r.printf("%s  %s\n", r.st.Heading.Render("People"), r.st.Muted.Render(v.Label))
	for _, p := range v.Items {
		r.printf("  %-8d %s\n", p.ID, p.Name)
	}
	r.strip(v.Window)
}

func (r *renderer) home(h *domain.HomeResponse) {
	if h == nil || len(h.Sections) == 0 {
		r.printf("%s\n", r.st.Muted.Render("Nothing to show yet."))
		return
	}
	for i, sec := range h.Sections {
		if i > 0 {
			r.printf("\n")
		}
		r.printf("%s\n", r.st.Heading.Render(sec.Title))
		for _, t := range sec.Items {
			r.printf("  %-8d %s %s  %s\n", t.ID, t.Title, r.st.Muted.Render(meta(t)), r.st.Rating.Render("★ "+t.RatingLabel()))
		}
	}
	if h.TotalCountEstimate > 0 {
		r.printf("\n%s\n", r.st.Muted.Render(counts.Sprintf("About %d titles in the catalog", h.TotalCountEstimate)))
	}
}

// report shows a failure and marks it as shown.
func (r *renderer) report(err error) error {
	r.failure(errorText(err))
	return reported(err)
}

func (r *renderer) success(msg string) {
	r.printf("%s\n", r.st.Success.Render(msg))
}

func (r *renderer) failure(msg string) {
	r.printf("%s\n", r.st.Error.Render(msg))
}
