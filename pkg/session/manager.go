package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/inkhive/pkg/blog"
	"github.com/dmitrymomot/inkhive/pkg/logger"
)

// Manager owns the current session: it exchanges credentials for one,
// persists it in a Store and reports it until it expires or is ended.
type Manager struct {
	// mu serializes session replacement (save and clear). Credential
	// exchange runs outside it.
	mu     sync.Mutex
	store  Store
	auth   Authenticator
	now    func() time.Time
	ttl    time.Duration
	logger *slog.Logger
}

// New returns a Manager over a MemoryStore with DefaultTTL unless opts say
// otherwise. Authenticate fails with ErrNoAuthenticator until one is set.
func New(opts ...Option) *Manager {
	m := &Manager{
		now: time.Now,
		ttl: DefaultTTL,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore()
	}
	if m.logger == nil {
		m.logger = logger.Discard()
	}

	return m
}

// Authenticate validates creds, exchanges them and stores the resulting
// session in place of any previous one.
//
// Invalid input is reported as validator.ValidationErrors without touching
// the network or the store. A failed exchange is reported as *AuthError and
// clears the session that was stored when the attempt started, unless another
// login replaced it meanwhile or ctx was cancelled.
func (m *Manager) Authenticate(ctx context.Context, creds blog.Credentials) (*Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if m.auth == nil {
		return nil, ErrNoAuthenticator
	}

	log := m.logger.With(logger.Username(creds.Username))
	prevID := m.storedID(ctx)

	grant, err := m.auth.Exchange(ctx, creds)
	if err == nil && !grant.valid() {
		err = &AuthError{Message: DefaultAuthMessage, Err: ErrMalformedGrant}
	}
	if err != nil {
		authErr := asAuthError(err)
		log.WarnContext(ctx, "authentication failed", slog.Int("status", authErr.Status), logger.Error(err))

		if prevID == "" || ctx.Err() != nil {
			return nil, authErr
		}
		if clearErr := m.clearIf(ctx, prevID); clearErr != nil {
			return nil, errors.Join(authErr, clearErr)
		}
		return nil, authErr
	}

	now := m.now()
	sess := &Session{
		ID:          uuid.NewString(),
		AccessToken: grant.AccessToken,
		TokenType:   grant.TokenType,
		User:        grant.User,
		IssuedAt:    now,
		ExpiresAt:   now.Add(m.ttl),
	}

	m.mu.Lock()
	err = m.store.Save(ctx, sess)
	m.mu.Unlock()
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	log.InfoContext(ctx, "session started", slog.String("session_id", sess.ID), slog.Time("expires_at", sess.ExpiresAt))
	return sess.clone(), nil
}

// Current returns the stored session. It returns ErrSessionNotFound when
// there is none and ErrSessionExpired when it has expired; an expired
// record is left in the store.
func (m *Manager) Current(ctx context.Context) (*Session, error) {
	sess, err := m.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, errors.Join(ErrStoreFailed, err)
	}
	if sess == nil {
		return nil, ErrSessionNotFound
	}
	if sess.IsExpired(m.now()) {
		return nil, ErrSessionExpired
	}
	return sess.clone(), nil
}

// AccessToken returns the token of the current session, if any.
func (m *Manager) AccessToken(ctx context.Context) (string, bool) {
	sess, err := m.Current(ctx)
	if err != nil {
		return "", false
	}
	return sess.AccessToken, sess.AccessToken != ""
}

// End discards the current session. Ending when there is none is a no-op.
func (m *Manager) End(ctx context.Context) error {
	if err := m.clear(ctx); err != nil {
		return err
	}
	m.logger.DebugContext(ctx, "session ended")
	return nil
}

func (m *Manager) clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}
	return nil
}

// clearIf clears the store only while it still holds the session with id.
func (m *Manager) clearIf(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.storedID(ctx) != id {
		return nil
	}
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreFailed, err)
	}
	return nil
}

func (m *Manager) storedID(ctx context.Context) string {
	sess, err := m.store.Load(ctx)
	if err != nil || sess == nil {
		return ""
	}
	return sess.ID
}
