package apiclient

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/inkhive/pkg/logger"
)

// TokenSource supplies the bearer token for outgoing requests.
// *session.Manager and session.ContextTokens implement it.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, bool)
}

type noTokens struct{}

func (noTokens) AccessToken(context.Context) (string, bool) { return "", false }

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client, which times out after 30s.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the timeout of the HTTP client in use.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTokenSource sets where the bearer token of each request comes from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		if ts != nil {
			c.tokens = ts
		}
	}
}

func WithLoginEncoding(enc LoginEncoding) Option {
	return func(c *Client) {
		if enc.Valid() {
			c.loginEncoding = enc
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l.With(logger.Component("apiclient"))
		}
	}
}
