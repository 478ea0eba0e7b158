package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/DjordjeVuckovic/title-hunter/internal/apperr"
	"github.com/DjordjeVuckovic/title-hunter/internal/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeAuth struct {
	mu sync.Mutex

	meUser  *domain.User
	meErr   error
	meGate  chan struct{}
	meCalls atomic.Int32

	loginCalls int
	loginUser  *domain.User
	loginErr   error
	signupUser *domain.User
	signupErr  error
	logoutErr  error
}

func (f *fakeAuth) Me(ctx context.Context) (*domain.User, error) {
	f.meCalls.Add(1)
	if f.meGate != nil {
		select {
		case <-f.meGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.meUser, f.meErr
}

func (f *fakeAuth) Login(_ context.Context, _ domain.LoginPayload) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	return f.loginUser, f.loginErr
}

func (f *fakeAuth) Signup(_ context.Context, _ domain.SignupPayload) (*domain.User, error) {
	return f.signupUser, f.signupErr
}

func (f *fakeAuth) Logout(context.Context) error {
	return f.logoutErr
}

func user(name string) *domain.User {
	return &domain.User{Name: &name}
}

func waitResolved(t *testing.T, s *Store) State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	st, err := s.Wait(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close(ctx))
	return st
}

func TestStore_InitialStateIsLoading(t *testing.T) {
	s := NewStore(&fakeAuth{})

	assert.Equal(t, State{IsLoading: true}, s.Snapshot())
	assert.Nil(t, s.CurrentUser())
}

func TestStore_UserWaitsForProbe(t *testing.T) {
	auth := &fakeAuth{meUser: user("Ada"), meGate: make(chan struct{})}
	s := NewStore(auth)
	s.Start(context.Background())

	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	u, err := s.User(short)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, u)

	close(auth.meGate)
	ctx, cancelWait := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelWait()
	u, err = s.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", u.DisplayName())
	require.NoError(t, s.Close(ctx))
}

func TestStore_ProbeResolvesUser(t *testing.T) {
	auth := &fakeAuth{meUser: user("Ada")}
	s := NewStore(auth)

	s.Start(context.Background())
	s.Start(context.Background())
	st := waitResolved(t, s)

	assert.False(t, st.IsLoading)
	assert.True(t, st.SignedIn())
	assert.Equal(t, "Ada", st.User.DisplayName())
	assert.Equal(t, int32(1), auth.meCalls.Load())
}

func TestStore_ProbeUnauthenticatedIsSilent(t *testing.T) {
	var reported []error
	auth := &fakeAuth{meErr: apperr.NewStatus("/auth/me", 401, "")}
	s := NewStore(auth, WithDiagnostics(func(err error) { reported = append(reported, err) }))

	s.Start(context.Background())
	st := waitResolved(t, s)

	assert.Equal(t, State{}, st)
	assert.Empty(t, reported)
}

func TestStore_ProbeFailureIsReported(t *testing.T) {
	var reported []error
	auth := &fakeAuth{meErr: apperr.NewStatus("/auth/me", 503, "down")}
	s := NewStore(auth, WithDiagnostics(func(err error) { reported = append(reported, err) }))

	s.Start(context.Background())
	st := waitResolved(t, s)

	assert.Equal(t, State{}, st)
	require.Len(t, reported, 1)
	assert.Equal(t, "down", apperr.ServerMessage(reported[0]))
}

func TestStore_LateProbeDoesNotOverwriteSignIn(t *testing.T) {
	auth := &fakeAuth{
		meGate:    make(chan struct{}),
		meUser:    user("Stale"),
		loginUser: user("Fresh"),
	}
	s := NewStore(auth)
	s.Start(context.Background())

	_, err := s.SignIn(context.Background(), "fresh@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "Fresh", s.CurrentUser().DisplayName())

	close(auth.meGate)
	st := waitResolved(t, s)

	assert.False(t, st.IsLoading)
	assert.Equal(t, "Fresh", st.User.DisplayName())
}

func TestStore_LateProbeDoesNotOverwriteSignOut(t *testing.T) {
	auth := &fakeAuth{meGate: make(chan struct{}), meUser: user("Stale")}
	s := NewStore(auth)
	s.Start(context.Background())

	require.NoError(t, s.SignOut(context.Background()))
	close(auth.meGate)
	st := waitResolved(t, s)

	assert.Equal(t, State{}, st)
}

func TestStore_SignOutClearsEvenOnFailure(t *testing.T) {
	auth := &fakeAuth{meUser: user("Ada"), logoutErr: apperr.NewTransport("/auth/logout", errors.New("offline"))}
	s := NewStore(auth)
	s.Start(context.Background())
	waitResolved(t, s)

	err := s.SignOut(context.Background())

	require.Error(t, err)
	assert.Equal(t, State{}, s.Snapshot())
}

func TestStore_SignInValidatesBeforeRequest(t *testing.T) {
	auth := &fakeAuth{loginUser: user("Ada")}
	s := NewStore(auth)

	_, err := s.SignIn(context.Background(), "  ", "password1")
	assert.Equal(t, "Please enter an email to continue.", SignInMessage(err))

	_, err = s.SignIn(context.Background(), "ada@example.com", "   ")
	assert.Equal(t, "Please enter your password.", SignInMessage(err))

	assert.Zero(t, auth.loginCalls)
	assert.True(t, s.Snapshot().IsLoading)
}

func TestStore_SignInFailureKeepsState(t *testing.T) {
	auth := &fakeAuth{meUser: user("Ada"), loginErr: &apperr.APIError{Kind: apperr.InvalidCredentials, Status: 401}}
	s := NewStore(auth)
	s.Start(context.Background())
	waitResolved(t, s)

	_, err := s.SignIn(context.Background(), "bob@example.com", "password1")

	assert.Equal(t, "Invalid email or password.", SignInMessage(err))
	assert.Equal(t, "Ada", s.CurrentUser().DisplayName())
}

func TestStore_SignUp(t *testing.T) {
	auth := &fakeAuth{signupUser: user("Grace")}
	s := NewStore(auth)

	got, err := s.SignUp(context.Background(), " Grace ", "grace@example.com", "longenough")

	require.NoError(t, err)
	assert.Equal(t, "Grace", got.DisplayName())
	assert.Equal(t, State{User: got}, s.Snapshot())

	st, err := s.Wait(context.Background())
	require.NoError(t, err)
	assert.False(t, st.IsLoading)
}

func TestSignUpValidation(t *testing.T) {
	tests := []struct {
		name, user, email, password string
		want                        string
	}{
		{"missing name", " ", "a@b.c", "longenough", "Please add your name and email to get started."},
		{"missing email", "Ann", "", "longenough", "Please add your name and email to get started."},
		{"short name", "A", "a@b.c", "longenough", "Name must be between 2 and 120 characters."},
		{"short password", "Ann", "a@b.c", "  short  ", "Please choose a password with at least 8 characters."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signupPayload(tt.user, tt.email, tt.password)
			assert.True(t, apperr.IsValidation(err))
			assert.Equal(t, tt.want, SignUpMessage(err))
		})
	}
}

func TestWait_HonorsContext(t *testing.T) {
	auth := &fakeAuth{meGate: make(chan struct{})}
	s := NewStore(auth)
	s.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	st, err := s.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, st.IsLoading)

	close(auth.meGate)
	waitResolved(t, s)
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "That email is already registered. Try signing in instead.",
		SignUpMessage(apperr.NewStatus("/auth/signup", 409, "exists")))
	assert.Equal(t, "Server exploded", SignUpMessage(apperr.NewStatus("/auth/signup", 500, "Server exploded")))
	assert.Equal(t, "We could not create your account. Please try again.",
		SignUpMessage(apperr.NewTransport("/auth/signup", errors.New("dial"))))
	assert.Equal(t, "We could not sign you in. Please try again.",
		SignInMessage(apperr.NewTransport("/auth/login", errors.New("dial"))))
	assert.Empty(t, SignInMessage(nil))
}
