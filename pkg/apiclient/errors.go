package apiclient

import (
	"errors"
	"net/http"
)

// DefaultErrorMessage is used when a failed response carries no readable
// error text, and for transport failures.
const DefaultErrorMessage = "An error occurred"

var (
	ErrTransport         = errors.New("apiclient.transport_failed")
	ErrMalformedResponse = errors.New("apiclient.malformed_response")
	ErrEncodeBody        = errors.New("apiclient.encode_body_failed")
	ErrInvalidBaseURL    = errors.New("apiclient.invalid_base_url")
)

// APIError is a failed call. Status is the HTTP status code, or 0 when no
// response was received (ErrTransport). Message is safe to show to users.
type APIError struct {
	Message string
	Status  int
	Err     error
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether the request never produced a response.
func (e *APIError) IsTransport() bool {
	return e.Status == 0
}

// IsUnauthorized reports a 401 from the server, usually a stale token.
func (e *APIError) IsUnauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

func transportError(err error) *APIError {
	return &APIError{Message: DefaultErrorMessage, Err: errors.Join(ErrTransport, err)}
}
