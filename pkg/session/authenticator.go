package session

import (
	"context"
	"errors"

	"github.com/dmitrymomot/inkhive/pkg/blog"
)

// DefaultAuthMessage is reported when the server gives no usable error text.
const DefaultAuthMessage = "An error occurred"

// Grant is the result of a successful credential exchange.
type Grant struct {
	AccessToken string
	TokenType   string
	User        blog.User
}

func (g Grant) valid() bool {
	return g.AccessToken != "" && (!g.User.ID.IsZero() || g.User.Username != "")
}

// Authenticator exchanges credentials for a Grant. Implementations should
// return *AuthError for rejected credentials.
type Authenticator interface {
	Exchange(ctx context.Context, creds blog.Credentials) (Grant, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, creds blog.Credentials) (Grant, error)

func (f AuthenticatorFunc) Exchange(ctx context.Context, creds blog.Credentials) (Grant, error) {
	return f(ctx, creds)
}

// AuthError is a rejected or unusable credential exchange. Message is meant
// for display; Status is the HTTP status when one was received.
type AuthError struct {
	Message string
	Status  int
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// asAuthError normalizes any exchange failure into *AuthError.
func asAuthError(err error) *AuthError {
	var ae *AuthError
	if errors.As(err, &ae) {
		if ae.Message != "" {
			return ae
		}
		return &AuthError{Message: DefaultAuthMessage, Status: ae.Status, Err: ae.Err}
	}
	return &AuthError{Message: DefaultAuthMessage, Err: err}
}
