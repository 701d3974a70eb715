package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inkhive/pkg/session"
)

func TestMiddleware_ContextTokens(t *testing.T) {
	t.Parallel()

	env := newCookieEnv(t)
	mw := session.Middleware(env.manager)

	login := httptest.NewRecorder()
	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m, ok := session.ManagerFromContext(r.Context())
		require.True(t, ok)
		_, err := m.Authenticate(r.Context(), aliceCreds)
		require.NoError(t, err)
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(login, httptest.NewRequest(http.MethodPost, "/", nil))

	var token string
	var ok bool
	mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		token, ok = session.ContextTokens{}.AccessToken(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), carry(login))

	assert.True(t, ok)
	assert.Equal(t, "tok-alice", token)

	_, ok = session.ContextTokens{}.AccessToken(context.Background())
	assert.False(t, ok)
}

func TestRequireSession(t *testing.T) {
	t.Parallel()

	env := newCookieEnv(t)
	handler := session.Middleware(env.manager)(session.RequireSession(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	login := httptest.NewRecorder()
	_, err := env.manager(login, httptest.NewRequest(http.MethodPost, "/", nil)).Authenticate(context.Background(), aliceCreds)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, carry(login))
	assert.Equal(t, http.StatusOK, rec.Code)
}
