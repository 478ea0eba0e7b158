package browse

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/DjordjeVuckovic/title-hunter/internal/cache"
	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
	"github.com/DjordjeVuckovic/title-hunter/internal/review"
)

const (
	// MaxCast is the number of cast members shown before "show more".
	MaxCast = 8
	// MaxRecentReviews is the number of reviews shown on the detail screen.
	MaxRecentReviews = 2
)

// DetailSource serves the detail screen.
type DetailSource interface {
	Title(ctx context.Context, id int64) (*domain.TitleDetail, error)
	Similar(ctx context.Context, id int64, limit int) ([]domain.TitleSummary, error)
}

// ReviewView is a recent review with its preview.
type ReviewView struct {
	ID       int64
	Author   string
	Initials string
	Date     string
	Rating   int
	Excerpt  review.Excerpt
}

type DetailView struct {
	Detail      *domain.TitleDetail
	Cast        []domain.CastMember
	MoreCast    int
	Reviews     []ReviewView
	Similar     []domain.TitleSummary
	Loading     bool
	Err         error
	SimilarErr  error
	CastShowAll bool
}

// DetailScreen shows one title and its similar titles. Opening another title
// discards answers still in flight for the previous one.
type DetailScreen struct {
	ID uuid.UUID

	source DetailSource
	cache  *cache.Cache
	log    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	seq      uint64
	titleID  int64
	view     DetailView
	expander review.Expander
	closed   bool
	changed  chan struct{}
}

type detailResult struct {
	detail     *domain.TitleDetail
	similar    []domain.TitleSummary
	err        error
	similarErr error
}

func NewDetailScreen(ctx context.Context, source DetailSource, opts ...Option) *DetailScreen {
	cfg := newSettings(opts)
	scope, cancel := context.WithCancel(ctx)
	id := uuid.New()
	return &DetailScreen{
		ID:      id,
		source:  source,
		cache:   cfg.cache,
		log:     cfg.log.With("screen", id.String()),
		ctx:     scope,
		cancel:  cancel,
		changed: make(chan struct{}),
	}
}

// Open loads a title and its similar titles in parallel. A failure of the
// similar query does not fail the screen.
func (d *DetailScreen) Open(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}

	d.seq++
	seq := d.seq
	if d.titleID != id {
		d.view = DetailView{}
		d.expander = review.Expander{}
	}
	d.titleID = id
	d.view.Loading = true
	d.view.Err = nil
	d.notifyLocked()

	d.wg.Add(1)
	go d.fetch(seq, id)
	return nil
}

// Refresh drops the cached detail of the open title and loads it again.
func (d *DetailScreen) Refresh() error {
	d.mu.Lock()
	id := d.titleID
	d.mu.Unlock()

	if d.cache != nil {
		d.cache.Forget(cache.KindDetail, id)
	}
	return d.Open(id)
}

func (d *DetailScreen) fetch(seq uint64, id int64) {
	defer d.wg.Done()

	var res detailResult
	g, ctx := errgroup.WithContext(d.ctx)
	g.Go(func() error {
		detail, err := d.title(ctx, id)
		res.detail = detail
		return err
	})
	g.Go(func() error {
		similar, err := d.similar(d.ctx, id)
		res.similar, res.similarErr = similar, err
		return nil
	})
	res.err = g.Wait()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed || seq != d.seq {
		d.log.Debug("Discarding stale detail", "title_id", id, "seq", seq, "latest", d.seq)
		return
	}

	d.view.Loading = false
	d.view.Err = res.err
	d.view.SimilarErr = res.similarErr
	d.view.Similar = res.similar
	if res.err == nil {
		d.view.Detail = res.detail
	}
	d.layoutLocked()
	d.notifyLocked()
}

func (d *DetailScreen) title(ctx context.Context, id int64) (*domain.TitleDetail, error) {
	if d.cache == nil {
		return d.source.Title(ctx, id)
	}
	return cache.Fetch(ctx, d.cache, cache.KindDetail, id, func(ctx context.Context) (*domain.TitleDetail, error) {
		return d.source.Title(ctx, id)
	})
}

func (d *DetailScreen) similar(ctx context.Context, id int64) ([]domain.TitleSummary, error) {
	if d.cache == nil {
		return d.source.Similar(ctx, id, 0)
	}
	return cache.Fetch(ctx, d.cache, cache.KindSimilar, id, func(ctx context.Context) ([]domain.TitleSummary, error) {
		return d.source.Similar(ctx, id, 0)
	})
}

func (d *DetailScreen) layoutLocked() {
	v := &d.view
	v.Cast, v.MoreCast, v.Reviews = nil, 0, nil
	if v.Detail == nil {
		return
	}

	v.Cast = v.Detail.Cast
	if !v.CastShowAll && len(v.Cast) > MaxCast {
		v.MoreCast = len(v.Cast) - MaxCast
		v.Cast = v.Cast[:MaxCast]
	}

	recent := v.Detail.RecentReviews
	if len(recent) > MaxRecentReviews {
		recent = recent[:MaxRecentReviews]
	}
	for _, r := range recent {
		v.Reviews = append(v.Reviews, ReviewView{
			ID:       r.ID,
			Author:   r.AuthorName(),
			Initials: review.Initials(r.UserName),
			Date:     review.FormatDate(r.CreatedAt),
			Rating:   r.Rating,
			Excerpt:  d.expander.Display(r.ID, r.Review),
		})
	}
}

// ToggleReview expands or collapses a review and returns the new flag.
func (d *DetailScreen) ToggleReview(id int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	expanded := d.expander.Toggle(id)
	d.layoutLocked()
	return expanded
}

// ToggleCast shows or hides the cast past MaxCast.
func (d *DetailScreen) ToggleCast() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.view.CastShowAll = !d.view.CastShowAll
	d.layoutLocked()
	return d.view.CastShowAll
}

func (d *DetailScreen) View() DetailView {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.view
}

// TitleID returns the id of the open title, or zero.
func (d *DetailScreen) TitleID() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.titleID
}

// Wait blocks until the open title finished loading.
func (d *DetailScreen) Wait(ctx context.Context) (DetailView, error) {
	for {
		d.mu.Lock()
		if !d.view.Loading || d.closed {
			v := d.view
			d.mu.Unlock()
			return v, v.Err
		}
		changed := d.changed
		d.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return d.View(), ctx.Err()
		}
	}
}

func (d *DetailScreen) notifyLocked() {
	close(d.changed)
	d.changed = make(chan struct{})
}

func (d *DetailScreen) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.view.Loading = false
	d.notifyLocked()
	d.mu.Unlock()

	d.cancel()
	d.wg.Wait()
}
