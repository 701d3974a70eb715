package session

import "context"

// Store keeps at most one session. Implementations must be safe for
// concurrent use.
type Store interface {
	// Load returns ErrSessionNotFound (possibly wrapped) when empty.
	Load(ctx context.Context) (*Session, error)
	// Save replaces the stored session.
	Save(ctx context.Context, s *Session) error
	// Clear removes the stored session. Clearing an empty store succeeds.
	Clear(ctx context.Context) error
}
