// Package session keeps the process-wide notion of who is signed in.
package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/DjordjeVuckovic/title-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
)

// Authenticator is the identity part of the catalog API.
type Authenticator interface {
	Me(ctx context.Context) (*domain.User, error)
	Login(ctx context.Context, payload domain.LoginPayload) (*domain.User, error)
	Signup(ctx context.Context, payload domain.SignupPayload) (*domain.User, error)
	Logout(ctx context.Context) error
}

// State is an immutable snapshot of the session.
type State struct {
	User      *domain.User
	IsLoading bool
}

// SignedIn reports whether the snapshot carries a user.
func (s State) SignedIn() bool {
	return s.User != nil
}

type snapshot struct {
	state State
	seq   uint64
}

// Store holds the session state. All writes replace the whole state. Each
// write carries the sequence number of the operation that issued it, and a
// write older than the current state never replaces its identity.
type Store struct {
	auth        Authenticator
	log         *slog.Logger
	diagnostics func(error)

	current atomic.Pointer[snapshot]
	seq     atomic.Uint64
	mu      sync.Mutex

	startOnce   sync.Once
	resolveOnce sync.Once
	resolved    chan struct{}
	probeDone   chan struct{}
}

type Option func(*Store)

// WithDiagnostics registers a hook for probe failures other than a missing
// session.
func WithDiagnostics(fn func(error)) Option {
	return func(s *Store) {
		s.diagnostics = fn
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

func NewStore(auth Authenticator, opts ...Option) *Store {
	s := &Store{
		auth:      auth,
		log:       slog.Default(),
		resolved:  make(chan struct{}),
		probeDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.current.Store(&snapshot{state: State{IsLoading: true}})
	return s
}

// Start issues the identity probe in the background. Only the first call
// has an effect.
func (s *Store) Start(ctx context.Context) {
	s.startOnce.Do(func() {
		seq := s.seq.Add(1)
		go s.probe(ctx, seq)
	})
}

func (s *Store) probe(ctx context.Context, seq uint64) {
	defer close(s.probeDone)

	user, err := s.auth.Me(ctx)
	switch {
	case err == nil:
		s.log.Debug("Session probe resolved", "signed_in", user != nil)
	case apperr.Is(err, apperr.Unauthenticated):
		user = nil
	default:
		user = nil
		s.log.Error("Failed to load session", "error", err)
		if s.diagnostics != nil {
			s.diagnostics(err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	if cur.seq > seq {
		next := &snapshot{state: State{User: cur.state.User}, seq: cur.seq}
		s.current.Store(next)
	} else {
		s.current.Store(&snapshot{state: State{User: user}, seq: seq})
	}
	s.markResolved()
}

// Wait blocks until the state is resolved or ctx is done.
func (s *Store) Wait(ctx context.Context) (State, error) {
	select {
	case <-s.resolved:
		return s.Snapshot(), nil
	case <-ctx.Done():
		return s.Snapshot(), ctx.Err()
	}
}

// Close waits for a started probe to finish. A store closed before Start
// never probes.
func (s *Store) Close(ctx context.Context) error {
	s.startOnce.Do(func() { close(s.probeDone) })
	select {
	case <-s.probeDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	return s.current.Load().state
}

// CurrentUser returns the signed-in user or nil.
func (s *Store) CurrentUser() *domain.User {
	return s.Snapshot().User
}

// User waits until the session is resolved and returns the signed-in user,
// or nil when nobody is signed in.
func (s *Store) User(ctx context.Context) (*domain.User, error) {
	st, err := s.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return st.User, nil
}

// SignIn validates the credentials, logs in and stores the returned user.
func (s *Store) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	payload, err := loginPayload(email, password)
	if err != nil {
		return nil, err
	}

	seq := s.seq.Add(1)
	user, err := s.auth.Login(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.write(seq, user)
	s.log.Info("Signed in", "user", user.DisplayName())
	return user, nil
}

// SignUp validates the form, creates the account and stores the new user.
func (s *Store) SignUp(ctx context.Context, name, email, password string) (*domain.User, error) {
	payload, err := signupPayload(name, email, password)
	if err != nil {
		return nil, err
	}

	seq := s.seq.Add(1)
	user, err := s.auth.Signup(ctx, payload)
	if err != nil {
		return nil, err
	}

	s.write(seq, user)
	s.log.Info("Signed up", "user", user.DisplayName())
	return user, nil
}

// SignOut revokes the session. The local state is cleared even when the
// revoke call fails; that error is still returned.
func (s *Store) SignOut(ctx context.Context) error {
	seq := s.seq.Add(1)
	err := s.auth.Logout(ctx)
	s.write(seq, nil)

	if err != nil {
		s.log.Warn("Sign out request failed", "error", err)
		return err
	}
	s.log.Info("Signed out")
	return nil
}

func (s *Store) write(seq uint64, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur := s.current.Load(); cur.seq > seq {
		return
	}
	s.current.Store(&snapshot{state: State{User: user}, seq: seq})
	s.markResolved()
}

func (s *Store) markResolved() {
	s.resolveOnce.Do(func() { close(s.resolved) })
}
