package session

import "errors"

var (
	ErrSessionNotFound = errors.New("session.not_found")
	ErrSessionExpired  = errors.New("session.expired")
	ErrInvalidSession  = errors.New("session.invalid")
	ErrMalformedGrant  = errors.New("session.malformed_grant")
	ErrNoAuthenticator = errors.New("session.no_authenticator")
	ErrStoreFailed     = errors.New("session.store_failed")
	ErrNoManager       = errors.New("session.no_manager_in_context")
)

// IsAbsent reports whether err means there is no usable session.
func IsAbsent(err error) bool {
	return errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrSessionExpired)
}
