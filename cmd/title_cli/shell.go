package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/title-hunter/internal/browse"
	"github.com/DjordjeVuckovic/title-hunter/internal/filter"
	"github.com/DjordjeVuckovic/title-hunter/internal/review"
	"github.com/DjordjeVuckovic/title-hunter/internal/session"
)

const shellHelp = `Commands:
  search [query]            search titles (empty query lists everything)
  filter key=value ...      set filters: type, sort, yearFrom, yearTo, genre, minRating, maxRating
  clear                     reset all filters
  page <n> | next | prev    move between result pages
  title <id>                open a title
  cast                      show or hide the full cast of the open title
  expand <review-id>        show or hide the full text of a review
  review <rating> <text>    review the open title
  refresh                   reload the open title
  suggest <text>            quick suggestions
  people [page]             list people
  home                      home screen sections
  login <email>             sign in (password is read from the next line)
  signup <email> <name>     create an account (password is read from the next line)
  logout | whoami
  help | quit`

// requestTimeout bounds a single shell command.
var requestTimeout = 30 * time.Second

type shell struct {
	ctx context.Context
	app *app
	in  *bufio.Scanner
	r   *renderer

	store  *session.Store
	submit *review.Submitter
	screen *browse.Screen
	detail *browse.DetailScreen
}

func runShell(ctx context.Context, a *app, in io.Reader) error {
	if ctx == nil {
		ctx = context.Background()
	}

	sh := newShell(ctx, a, in)
	defer sh.close()

	sh.r.printf("%s\n", sh.r.st.Muted.Render(`Title catalog shell. Type "help" for commands.`))
	for {
		line, ok := sh.readLine("> ")
		if !ok {
			return sh.in.Err()
		}
		if quit := sh.exec(strings.TrimSpace(line)); quit {
			return nil
		}
	}
}

func newShell(ctx context.Context, a *app, in io.Reader) *shell {
	store := session.NewStore(a.catalog,
		session.WithLogger(a.log),
		session.WithDiagnostics(func(err error) {
			a.log.Warn("Session probe failed", "error", err)
		}),
	)
	store.Start(ctx)

	return &shell{
		ctx:    ctx,
		app:    a,
		in:     bufio.NewScanner(in),
		r:      newRenderer(a.out),
		store:  store,
		submit: review.NewSubmitter(a.catalog, store, a.log),
		screen: browse.NewScreen(ctx, a.catalog, filter.Parse(nil), a.browseOptions()...),
		detail: browse.NewDetailScreen(ctx, a.catalog, a.browseOptions()...),
	}
}

func (sh *shell) close() {
	sh.screen.Close()
	sh.detail.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := sh.store.Close(ctx); err != nil {
		sh.app.log.Debug("Session probe still running at exit", "error", err)
	}
}

// readLine returns the next input line as typed.
func (sh *shell) readLine(prompt string) (string, bool) {
	sh.r.printf("%s", prompt)
	if !sh.in.Scan() {
		return "", false
	}
	return strings.TrimSuffix(sh.in.Text(), "\r"), true
}

// exec runs one command line and reports whether the shell should exit.
func (sh *shell) exec(line string) bool {
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	ctx, cancel := context.WithTimeout(sh.ctx, requestTimeout)
	defer cancel()

	switch strings.ToLower(name) {
	case "":
	case "quit", "exit":
		return true
	case "help":
		sh.r.printf("%s\n", shellHelp)
	case "search":
		sh.listing(ctx, sh.screen.Edit(func(st *filter.State) { st.Query = rest }))
	case "filter":
		sh.filter(ctx, strings.Fields(rest))
	case "clear":
		sh.listing(ctx, sh.screen.Edit(func(st *filter.State) { *st = filter.Default() }))
	case "page":
		page, err := strconv.Atoi(rest)
		if err != nil {
			sh.r.failure("Usage: page <n>")
			return false
		}
		sh.listing(ctx, sh.screen.GoTo(page))
	case "next":
		sh.listing(ctx, sh.screen.Next())
	case "prev":
		sh.listing(ctx, sh.screen.Prev())
	case "title":
		id, err := parseID(rest)
		if err != nil {
			sh.r.failure(errorText(err))
			return false
		}
		sh.showDetail(ctx, sh.detail.Open(id))
	case "cast":
		if sh.requireTitle() {
			sh.detail.ToggleCast()
			sh.r.detail(sh.detail.View())
		}
	case "expand":
		sh.expand(rest)
	case "review":
		sh.review(ctx, rest)
	case "refresh":
		if sh.requireTitle() {
			sh.showDetail(ctx, sh.detail.Refresh())
		}
	case "suggest":
		_ = runSuggest(ctx, sh.app, rest)
	case "people":
		page := 1
		if rest != "" {
			p, err := strconv.Atoi(rest)
			if err != nil {
				sh.r.failure("Usage: people [page]")
				return false
			}
			page = p
		}
		_ = runPeople(ctx, sh.app, page)
	case "home":
		_ = runHome(ctx, sh.app)
	case "login":
		sh.login(ctx, rest)
	case "signup":
		sh.signup(ctx, rest)
	case "logout":
		sh.logout(ctx)
	case "whoami":
		sh.whoami(ctx)
	default:
		sh.r.failure(fmt.Sprintf("Unknown command %q. Type \"help\" for commands.", name))
	}
	return false
}

func (sh *shell) listing(ctx context.Context, err error) {
	if err != nil {
		sh.r.failure(errorText(err))
		return
	}
	v, err := sh.screen.Wait(ctx)
	if err != nil && v.Err == nil {
		sh.r.failure(errorText(err))
		return
	}
	sh.r.listing(v)
}

// filter applies key=value pairs to the current filters. An empty value
// clears that filter.
func (sh *shell) filter(ctx context.Context, pairs []string) {
	if len(pairs) == 0 {
		sh.r.failure("Usage: filter key=value ...")
		return
	}

	values, err := url.ParseQuery(sh.screen.Query())
	if err != nil {
		values = url.Values{}
	}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			sh.r.failure(fmt.Sprintf("Expected key=value, got %q", pair))
			return
		}
		if value == "" {
			values.Del(key)
			continue
		}
		values.Set(key, value)
	}

	next := filter.Parse(values).State()
	sh.listing(ctx, sh.screen.Edit(func(st *filter.State) {
		page := st.Page
		*st = next
		st.Page = page
	}))
}

func (sh *shell) showDetail(ctx context.Context, err error) {
	if err != nil {
		sh.r.failure(errorText(err))
		return
	}
	v, err := sh.detail.Wait(ctx)
	if err != nil {
		sh.r.failure(errorText(err))
		return
	}
	sh.r.detail(v)
}

func (sh *shell) requireTitle() bool {
	if sh.detail.TitleID() == 0 {
		sh.r.failure(`Open a title first with "title <id>".`)
		return false
	}
	return true
}

func (sh *shell) expand(rest string) {
	if !sh.requireTitle() {
		return
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		sh.r.failure("Usage: expand <review-id>")
		return
	}
	sh.detail.ToggleReview(id)
	sh.r.detail(sh.detail.View())
}

func (sh *shell) review(ctx context.Context, rest string) {
	if !sh.requireTitle() {
		return
	}
	rawRating, text, _ := strings.Cut(rest, " ")
	rating, err := strconv.Atoi(rawRating)
	if err != nil {
		sh.r.failure("Usage: review <rating 1-10> <text>")
		return
	}

	_, err = sh.submit.Submit(ctx, sh.detail.TitleID(), review.Draft{Rating: rating, Text: text})
	if err != nil {
		sh.r.failure(review.SubmitMessage(err))
		return
	}
	sh.r.success(review.SubmitMessage(nil))
	sh.showDetail(ctx, sh.detail.Refresh())
}

func (sh *shell) login(ctx context.Context, email string) {
	password, ok := sh.readLine("Password: ")
	if !ok {
		return
	}
	user, err := sh.store.SignIn(ctx, email, password)
	if err != nil {
		sh.r.failure(session.SignInMessage(err))
		return
	}
	sh.r.success("Signed in as " + user.DisplayName() + ".")
}

func (sh *shell) signup(ctx context.Context, rest string) {
	email, name, _ := strings.Cut(rest, " ")
	password, ok := sh.readLine("Password: ")
	if !ok {
		return
	}
	user, err := sh.store.SignUp(ctx, name, email, password)
	if err != nil {
		sh.r.failure(session.SignUpMessage(err))
		return
	}
	sh.r.success("Welcome, " + user.DisplayName() + ".")
}

func (sh *shell) logout(ctx context.Context) {
	if err := sh.store.SignOut(ctx); err != nil {
		sh.r.failure("Signed out locally. The server did not confirm: " + errorText(err))
		return
	}
	sh.r.success("Signed out.")
}

func (sh *shell) whoami(ctx context.Context) {
	st, err := sh.store.Wait(ctx)
	switch {
	case err != nil:
		sh.r.failure("Still checking your session.")
	case st.SignedIn():
		sh.r.printf("%s\n", st.User.DisplayName())
	default:
		sh.r.printf("%s\n", sh.r.st.Muted.Render("Not signed in."))
	}
}
