package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/dmitrymomot/inkhive/pkg/cookie"
	"github.com/dmitrymomot/inkhive/pkg/jwt"
)

// CookieName is the session cookie name on plain-HTTP tiers. Secure tiers
// use it with the "__Secure-" prefix.
const CookieName = "inkhive.session-token"

// TokenIssuer is the iss claim of sealed session tokens.
const TokenIssuer = "inkhive"

type sessionClaims struct {
	jwt.StandardClaims
	Session Session `json:"session"`
}

// CookieStore keeps the session in the client: the session is signed as a
// JWT and the token is stored in an encrypted cookie. A CookieStore is bound
// to one request; writes are visible to later reads within that request.
type CookieStore struct {
	cookies *cookie.Manager
	signer  *jwt.Service
	name    string
	w       http.ResponseWriter
	r       *http.Request

	mu      sync.Mutex
	written bool
	pending *Session
}

// NewCookieStore binds a store to the request/response pair. The cookie
// name is CookieName, prefixed when cookies are Secure.
func NewCookieStore(w http.ResponseWriter, r *http.Request, cookies *cookie.Manager, signer *jwt.Service) *CookieStore {
	return &CookieStore{
		cookies: cookies,
		signer:  signer,
		name:    cookies.Name(CookieName),
		w:       w,
		r:       r,
	}
}

// Name returns the cookie name in use.
func (s *CookieStore) Name() string {
	return s.name
}

func (s *CookieStore) Load(context.Context) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.written {
		if s.pending == nil {
			return nil, ErrSessionNotFound
		}
		return s.pending.clone(), nil
	}

	token, err := s.cookies.GetEncrypted(s.r, s.name)
	if err != nil {
		if errors.Is(err, cookie.ErrCookieNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: %w: %w", ErrSessionNotFound, ErrInvalidSession, err)
	}

	var claims sessionClaims
	if err := s.signer.Parse(token, &claims); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", ErrSessionNotFound, ErrInvalidSession, err)
	}
	if claims.ID != claims.Session.ID {
		return nil, fmt.Errorf("%w: %w", ErrSessionNotFound, ErrInvalidSession)
	}

	return &claims.Session, nil
}

// Save writes the cookie with Max-Age set to the session lifetime. Expiry is
// carried inside the signed token, not enforced by the token itself.
func (s *CookieStore) Save(_ context.Context, sess *Session) error {
	if sess == nil {
		return ErrInvalidSession
	}

	token, err := s.signer.Generate(sessionClaims{
		StandardClaims: jwt.StandardClaims{
			ID:       sess.ID,
			Subject:  sess.User.ID.String(),
			Issuer:   TokenIssuer,
			IssuedAt: sess.IssuedAt.Unix(),
		},
		Session: *sess,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cookies.SetEncrypted(s.w, s.name, token, cookie.WithMaxAge(maxAge(sess))); err != nil {
		return err
	}
	s.written, s.pending = true, sess.clone()
	return nil
}

func (s *CookieStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cookies.Delete(s.w, s.name)
	s.written, s.pending = true, nil
	return nil
}

// maxAge is the session lifetime in whole seconds, rounded up.
func maxAge(sess *Session) int {
	lifetime := sess.Lifetime()
	secs := int(lifetime.Seconds())
	if lifetime > 0 && float64(secs) < lifetime.Seconds() {
		secs++
	}
	return max(secs, 1)
}
