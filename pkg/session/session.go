package session

import (
	"time"

	"github.com/dmitrymomot/inkhive/pkg/blog"
)

// DefaultTTL is the fixed lifetime of a session from issuance.
const DefaultTTL = 24 * time.Hour

// Session pairs an access token with the identity it was issued for. A
// session is never mutated after creation; re-authentication replaces it.
type Session struct {
	ID          string    `json:"id"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type,omitempty"`
	User        blog.User `json:"user"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IsExpired reports whether the session is no longer valid at now. A
// session expires at ExpiresAt exactly.
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Lifetime is the full validity window granted at issuance.
func (s *Session) Lifetime() time.Duration {
	return s.ExpiresAt.Sub(s.IssuedAt)
}

func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
