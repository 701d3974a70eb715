package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/inkhive/pkg/logger"
)

type Option func(*Manager)

// WithStore sets where the session is kept. Defaults to a MemoryStore.
func WithStore(store Store) Option {
	return func(m *Manager) {
		if store != nil {
			m.store = store
		}
	}
}

// WithAuthenticator sets what Authenticate exchanges credentials with.
func WithAuthenticator(auth Authenticator) Option {
	return func(m *Manager) {
		m.auth = auth
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger for session lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l.With(logger.Component("session"))
		}
	}
}

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}
