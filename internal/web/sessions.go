package web

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/inkhive/pkg/cookie"
	"github.com/dmitrymomot/inkhive/pkg/jwt"
	"github.com/dmitrymomot/inkhive/pkg/session"
)

// CookieSessions keeps each browser's session in a sealed cookie.
func CookieSessions(cookies *cookie.Manager, signer *jwt.Service, auth session.Authenticator, log *slog.Logger) session.Factory {
	return func(w http.ResponseWriter, r *http.Request) *session.Manager {
		return session.New(
			session.WithStore(session.NewCookieStore(w, r, cookies, signer)),
			session.WithAuthenticator(auth),
			session.WithLogger(log),
		)
	}
}

// ServerSideSessions keeps sessions in backend, referenced by a signed cookie.
func ServerSideSessions(cookies *cookie.Manager, backend session.Backend, auth session.Authenticator, log *slog.Logger) session.Factory {
	return func(w http.ResponseWriter, r *http.Request) *session.Manager {
		return session.New(
			session.WithStore(session.NewServerSideStore(w, r, cookies, backend)),
			session.WithAuthenticator(auth),
			session.WithLogger(log),
		)
	}
}
