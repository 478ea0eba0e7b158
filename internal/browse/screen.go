// Package browse drives the catalog screens: it issues listing and detail
// requests for the current filters and keeps only the newest answer.
package browse

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/DjordjeVuckovic/title-hunter/internal/cache"
	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
	"github.com/DjordjeVuckovic/title-hunter/internal/filter"
	"github.com/DjordjeVuckovic/title-hunter/internal/resultset"
	"github.com/DjordjeVuckovic/title-hunter/pkg/pagination"
)

// ErrClosed is returned by operations on a closed screen.
var ErrClosed = errors.New("screen closed")

// Searcher runs listing queries.
type Searcher interface {
	Search(ctx context.Context, payload domain.SearchPayload) (*resultset.Set[domain.TitleSummary], error)
}

// View is what a browse screen shows at one moment.
type View struct {
	Heading string
	Label   string
	Query   string
	Filters filter.State
	Items   []domain.TitleSummary
	Window  pagination.Window
	// Loading is set while a request is in flight. Stale is set when the
	// items shown belong to an earlier request.
	Loading bool
	Stale   bool
	Err     error
}

// Screen is one browse screen. Every request it issues gets a sequence
// number, and a completion is applied only if its number is the latest
// issued. After Close no completion is applied.
type Screen struct {
	ID uuid.UUID

	search   Searcher
	cache    *cache.Cache
	pageSize int
	log      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	filters   *filter.Sync
	seq       uint64
	inFlight  bool
	result    *resultset.Set[domain.TitleSummary]
	shownPage int
	err       error
	closed    bool
	changed   chan struct{}
}

type settings struct {
	cache    *cache.Cache
	pageSize int
	log      *slog.Logger
}

// Option configures a Screen or a DetailScreen.
type Option func(*settings)

// WithCache serves repeated requests from c.
func WithCache(c *cache.Cache) Option {
	return func(s *settings) {
		s.cache = c
	}
}

func WithPageSize(size int) Option {
	return func(s *settings) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

func newSettings(opts []Option) settings {
	cfg := settings{pageSize: pagination.PageDefaultSize, log: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewScreen opens a screen for the given filters. The screen's scope ends
// when ctx is done or Close is called.
func NewScreen(ctx context.Context, search Searcher, filters *filter.Sync, opts ...Option) *Screen {
	cfg := newSettings(opts)
	scope, cancel := context.WithCancel(ctx)
	id := uuid.New()
	return &Screen{
		ID:       id,
		search:   search,
		cache:    cfg.cache,
		pageSize: cfg.pageSize,
		log:      cfg.log.With("screen", id.String()),
		ctx:      scope,
		cancel:   cancel,
		filters:  filters,
		changed:  make(chan struct{}),
	}
}

// Load requests the page for the current filters. Invalid filters fail
// immediately without a request.
func (s *Screen) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

// Edit changes the filters and loads the first page of the new result.
func (s *Screen) Edit(fn func(*filter.State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.filters.Edit(fn)
	return s.loadLocked()
}

// GoTo loads another page of the current result.
func (s *Screen) GoTo(page int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.filters.GoTo(page)
	return s.loadLocked()
}

// Next and Prev move one page within the known window.
func (s *Screen) Next() error {
	return s.step(func(w pagination.Window) int { return w.Next() })
}

func (s *Screen) Prev() error {
	return s.step(func(w pagination.Window) int { return w.Prev() })
}

func (s *Screen) step(target func(pagination.Window) int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	page := target(s.windowLocked())
	if page == s.filters.State().Page {
		return nil
	}
	s.filters.GoTo(page)
	return s.loadLocked()
}

func (s *Screen) loadLocked() error {
	if s.closed {
		return ErrClosed
	}

	s.seq++
	seq := s.seq

	state := s.filters.State()
	if err := state.Validate(); err != nil {
		s.inFlight = false
		s.err = err
		s.notifyLocked()
		return err
	}

	s.inFlight = true
	s.err = nil
	s.notifyLocked()

	payload := state.Payload(s.pageSize)
	s.wg.Add(1)
	go s.fetch(seq, state.Page, payload)
	return nil
}

func (s *Screen) fetch(seq uint64, page int, payload domain.SearchPayload) {
	defer s.wg.Done()

	var (
		set *resultset.Set[domain.TitleSummary]
		err error
	)
	if s.cache != nil {
		set, err = cache.Fetch(s.ctx, s.cache, cache.KindListing, payload, func(ctx context.Context) (*resultset.Set[domain.TitleSummary], error) {
			return s.search.Search(ctx, payload)
		})
	} else {
		set, err = s.search.Search(s.ctx, payload)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || seq != s.seq {
		s.log.Debug("Discarding stale listing", "seq", seq, "latest", s.seq, "closed", s.closed)
		return
	}

	s.inFlight = false
	if err != nil {
		s.log.Debug("Listing failed", "seq", seq, "error", err)
		s.err = err
		s.notifyLocked()
		return
	}

	s.result = set
	s.shownPage = page
	s.log.Debug("Listing applied", "seq", seq, "page", page, "items", len(set.Items))

	// A page past the end moves to the last page.
	if w := set.Window(page, s.pageSize); w.CurrentPage != page {
		s.filters.GoTo(w.CurrentPage)
		_ = s.loadLocked()
		return
	}
	s.notifyLocked()
}

func (s *Screen) notifyLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

func (s *Screen) windowLocked() pagination.Window {
	return s.result.Window(s.filters.State().Page, s.pageSize)
}

// View returns the current view. While a new page loads it keeps the
// previous items and marks them stale.
func (s *Screen) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Screen) viewLocked() View {
	state := s.filters.State()
	v := View{
		Heading: state.Heading(),
		Label:   resultset.Label(s.result, s.inFlight && s.result == nil),
		Query:   state.Query,
		Filters: state,
		Window:  s.windowLocked(),
		Loading: s.inFlight,
		Err:     s.err,
	}
	if s.result != nil {
		v.Items = s.result.Items
		v.Stale = s.inFlight || s.shownPage != state.Page
	}
	return v
}

// Wait blocks until no request is in flight and returns the view.
func (s *Screen) Wait(ctx context.Context) (View, error) {
	for {
		s.mu.Lock()
		if !s.inFlight || s.closed {
			v := s.viewLocked()
			s.mu.Unlock()
			return v, v.Err
		}
		changed := s.changed
		s.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return s.View(), ctx.Err()
		}
	}
}

// Filters returns a copy of the current filter state.
func (s *Screen) Filters() filter.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.State()
}

// Query returns the query parameters for the current filters.
func (s *Screen) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters.Encode()
}

// Close ends the screen scope, cancels in-flight requests and waits for
// them to return.
func (s *Screen) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.inFlight = false
	s.notifyLocked()
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}
