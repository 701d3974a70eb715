package session_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inkhive/pkg/blog"
	"github.com/dmitrymomot/inkhive/pkg/session"
	"github.com/dmitrymomot/inkhive/pkg/validator"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var alice = blog.User{ID: "1", Username: "alice", Email: "alice@example.com"}

// fakeAuth accepts alice/password1 and rejects everything else with 401.
type fakeAuth struct {
	calls atomic.Int32
}

func (f *fakeAuth) Exchange(_ context.Context, c blog.Credentials) (session.Grant, error) {
	f.calls.Add(1)
	if c.Username == "alice" && c.Password == "password1" {
		return session.Grant{AccessToken: "tok-alice", TokenType: "bearer", User: alice}, nil
	}
	return session.Grant{}, &session.AuthError{Message: "invalid credentials", Status: http.StatusUnauthorized}
}

func setupManager(t *testing.T, opts ...session.Option) (*session.Manager, *session.MemoryStore, *fakeClock, *fakeAuth) {
	t.Helper()
	store := session.NewMemoryStore()
	clock := newClock()
	auth := &fakeAuth{}
	m := session.New(append([]session.Option{
		session.WithStore(store),
		session.WithAuthenticator(auth),
		session.WithClock(clock.Now),
	}, opts...)...)
	return m, store, clock, auth
}

func TestManager_Authenticate(t *testing.T) {
	t.Parallel()

	m, _, clock, _ := setupManager(t)
	ctx := context.Background()

	sess, err := m.Authenticate(ctx, blog.Credentials{Username: "alice", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, alice, sess.User)
	assert.Equal(t, "tok-alice", sess.AccessToken)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, clock.Now(), sess.IssuedAt)
	assert.Equal(t, 24*time.Hour, sess.ExpiresAt.Sub(sess.IssuedAt))

	current, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess, current)

	token, ok := m.AccessToken(ctx)
	assert.True(t, ok)
	assert.Equal(t, "tok-alice", token)
}

func TestManager_Authenticate_Rejected(t *testing.T) {
	t.Parallel()

	m, store, _, _ := setupManager(t)
	ctx := context.Background()

	_, err := m.Authenticate(ctx, blog.Credentials{Username: "alice", Password: "wrongpass"})
	require.Error(t, err)

	var authErr *session.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "invalid credentials", authErr.Message)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
	assert.False(t, validator.IsValidationError(err))

	_, err = m.Current(ctx)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_Authenticate_FailureClearsPrevious(t *testing.T) {
	t.Parallel()

	m, _, _, _ := setupManager(t)
	ctx := context.Background()

	_, err := m.Authenticate(ctx, blog.Credentials{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	_, err = m.Authenticate(ctx, blog.Credentials{Username: "mallory", Password: "password1"})
	require.Error(t, err)

	_, ok := m.AccessToken(ctx)
	assert.False(t, ok)
}

func TestManager_Authenticate_ValidationBeforeNetwork(t *testing.T) {
	t.Parallel()

	m, _, _, auth := setupManager(t)
	ctx := context.Background()

	_, err := m.Authenticate(ctx, blog.Credentials{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	_, err = m.Authenticate(ctx, blog.Credentials{Username: "", Password: "short"})
	require.True(t, validator.IsValidationError(err))
	ve := validator.ExtractValidationErrors(err)
	assert.True(t, ve.Has("username"))
	assert.True(t, ve.Has("password"))

	var authErr *session.AuthError
	assert.False(t, errors.As(err, &authErr))
	assert.Equal(t, int32(1), auth.calls.Load())

	// Invalid input leaves the existing session alone.
	_, err = m.Current(ctx)
	assert.NoError(t, err)
}

func TestManager_Authenticate_MalformedGrant(t *testing.T) {
	t.Parallel()

	tests := map[string]session.Grant{
		"missing token": {User: alice},
		"missing user":  {AccessToken: "tok"},
	}

	for name, grant := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			m := session.New(session.WithAuthenticator(session.AuthenticatorFunc(
				func(context.Context, blog.Credentials) (session.Grant, error) { return grant, nil },
			)))

			_, err := m.Authenticate(context.Background(), blog.Credentials{Username: "alice", Password: "password1"})
			var authErr *session.AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, session.DefaultAuthMessage, authErr.Message)
			assert.ErrorIs(t, err, session.ErrMalformedGrant)
		})
	}
}

func TestManager_Authenticate_GenericFailure(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: connection refused")
	m := session.New(session.WithAuthenticator(session.AuthenticatorFunc(
		func(context.Context, blog.Credentials) (session.Grant, error) { return session.Grant{}, cause },
	)))

	_, err := m.Authenticate(context.Background(), blog.Credentials{Username: "alice", Password: "password1"})
	var authErr *session.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "An error occurred", authErr.Message)
	assert.Zero(t, authErr.Status)
	assert.ErrorIs(t, err, cause)
}

func TestManager_Authenticate_NoAuthenticator(t *testing.T) {
	t.Parallel()

	_, err := session.New().Authenticate(context.Background(), blog.Credentials{Username: "alice", Password: "password1"})
	assert.ErrorIs(t, err, session.ErrNoAuthenticator)
}

func TestManager_LazyExpiry(t *testing.T) {
	t.Parallel()

	m, store, clock, _ := setupManager(t)
	ctx := context.Background()

	_, err := m.Authenticate(ctx, blog.Credentials{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	clock.Advance(24*time.Hour - time.Nanosecond)
	_, err = m.Current(ctx)
	require.NoError(t, err)

	clock.Advance(time.Nanosecond)
	_, err = m.Current(ctx)
	assert.ErrorIs(t, err, session.ErrSessionExpired)
	assert.True(t, session.IsAbsent(err))

	_, ok := m.AccessToken(ctx)
	assert.False(t, ok)

	stale, err := store.Load(ctx)
	require.NoError(t, err, "expired record stays in the store")
	assert.Equal(t, "tok-alice", stale.AccessToken)
}

func TestManager_WithTTL(t *testing.T) {
	t.Parallel()

	m, _, clock, _ := setupManager(t, session.WithTTL(time.Minute))
	ctx := context.Background()

	sess, err := m.Authenticate(ctx, blog.Credentials{Username: "alice", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, time.Minute, sess.Lifetime())

	clock.Advance(time.Minute)
	_, err = m.Current(ctx)
	assert.ErrorIs(t, err, session.ErrSessionExpired)
}

func TestManager_End(t *testing.T) {
	t.Parallel()

	m, _, _, _ := setupManager(t)
	ctx := context.Background()

	require.NoError(t, m.End(ctx), "ending without a session")

	_, err := m.Authenticate(ctx, blog.Credentials{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	require.NoError(t, m.End(ctx))
	require.NoError(t, m.End(ctx))

	_, ok := m.AccessToken(ctx)
	assert.False(t, ok)
	_, err = m.Current(ctx)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestManager_ReturnsCopies(t *testing.T) {
	t.Parallel()

	m, _, _, _ := setupManager(t)
	ctx := context.Background()

	sess, err := m.Authenticate(ctx, blog.Credentials{Username: "alice", Password: "password1"})
	require.NoError(t, err)
	sess.AccessToken = "mutated"

	token, _ := m.AccessToken(ctx)
	assert.Equal(t, "tok-alice", token)
}

func TestManager_ConcurrentAuthenticateAndEnd(t *testing.T) {
	t.Parallel()

	tokens := map[string]blog.User{}
	for i := range 8 {
		tokens[fmt.Sprintf("tok-%d", i)] = blog.User{ID: blog.ID(fmt.Sprint(i)), Username: fmt.Sprintf("user%d", i)}
	}

	auth := session.AuthenticatorFunc(func(_ context.Context, c blog.Credentials) (session.Grant, error) {
		var i int
		_, _ = fmt.Sscanf(c.Username, "user%d", &i)
		token := fmt.Sprintf("tok-%d", i)
		return session.Grant{AccessToken: token, User: tokens[token]}, nil
	})

	for range 20 {
		store := session.NewMemoryStore()
		m := session.New(session.WithStore(store), session.WithAuthenticator(auth))
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := range 8 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, _ = m.Authenticate(ctx, blog.Credentials{Username: fmt.Sprintf("user%d", i), Password: "password1"})
			}()
			go func() {
				defer wg.Done()
				_ = m.End(ctx)
			}()
		}
		wg.Wait()

		sess, err := m.Current(ctx)
		if err != nil {
			require.ErrorIs(t, err, session.ErrSessionNotFound)
			continue
		}
		assert.Equal(t, tokens[sess.AccessToken], sess.User, "token and identity come from the same grant")
	}
}

func TestManager_FailedLoginKeepsConcurrentSession(t *testing.T) {
	t.Parallel()

	entered := make(chan struct{})
	release := make(chan struct{})
	auth := session.AuthenticatorFunc(func(_ context.Context, c blog.Credentials) (session.Grant, error) {
		if c.Username == "bob" {
			close(entered)
			<-release
			return session.Grant{}, &session.AuthError{Message: "invalid credentials", Status: http.StatusUnauthorized}
		}
		return session.Grant{AccessToken: "tok-alice", TokenType: "bearer", User: alice}, nil
	})

	m := session.New(session.WithStore(session.NewMemoryStore()), session.WithAuthenticator(auth))
	ctx := context.Background()

	_, err := m.Authenticate(ctx, blog.Credentials{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	bobErr := make(chan error, 1)
	go func() {
		_, err := m.Authenticate(ctx, blog.Credentials{Username: "bob", Password: "password1"})
		bobErr <- err
	}()
	<-entered

	fresh, err := m.Authenticate(ctx, blog.Credentials{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	close(release)
	var authErr *session.AuthError
	require.ErrorAs(t, <-bobErr, &authErr)

	sess, err := m.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, sess.ID)
	assert.Equal(t, alice, sess.User)
}

func TestManager_CancelledLoginKeepsSession(t *testing.T) {
	t.Parallel()

	auth := session.AuthenticatorFunc(func(ctx context.Context, c blog.Credentials) (session.Grant, error) {
		if c.Username == "alice" {
			return session.Grant{AccessToken: "tok-alice", TokenType: "bearer", User: alice}, nil
		}
		<-ctx.Done()
		return session.Grant{}, ctx.Err()
	})

	m := session.New(session.WithStore(session.NewMemoryStore()), session.WithAuthenticator(auth))

	prev, err := m.Authenticate(context.Background(), blog.Credentials{Username: "alice", Password: "password1"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = m.Authenticate(ctx, blog.Credentials{Username: "bob", Password: "password1"})
	require.Error(t, err)

	sess, err := m.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, prev.ID, sess.ID)
}
