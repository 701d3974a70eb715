package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/inkhive/pkg/blog"
	"github.com/dmitrymomot/inkhive/pkg/session"
)

// LoginEncoding selects how credentials are posted to the login endpoint.
type LoginEncoding string

const (
	LoginJSON LoginEncoding = "json"
	LoginForm LoginEncoding = "form"
)

func (e LoginEncoding) Valid() bool {
	return e == LoginJSON || e == LoginForm
}

type loginResponse struct {
	User        *blog.User `json:"user"`
	Token       string     `json:"token"`
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
}

// Exchange posts creds to /users/login. It never sends a bearer token.
//
// The token is read from "token", falling back to "access_token". Rejections
// become *session.AuthError carrying the server's text; a success without a
// user or a token is reported as malformed.
func (c *Client) Exchange(ctx context.Context, creds blog.Credentials) (session.Grant, error) {
	var (
		raw    json.RawMessage
		status int
		err    error
	)
	switch c.loginEncoding {
	case LoginForm:
		form := url.Values{"username": {creds.Username}, "password": {creds.Password}}
		raw, status, err = c.sendRaw(ctx, http.MethodPost, "/users/login",
			strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", false)
	default:
		raw, status, err = c.send(ctx, http.MethodPost, "/users/login", creds, false)
	}
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return session.Grant{}, &session.AuthError{Message: apiErr.Message, Status: apiErr.Status, Err: err}
		}
		return session.Grant{}, &session.AuthError{Message: session.DefaultAuthMessage, Err: err}
	}

	var resp loginResponse
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &resp); err != nil {
			return session.Grant{}, &session.AuthError{
				Message: session.DefaultAuthMessage,
				Status:  status,
				Err:     errors.Join(session.ErrMalformedGrant, ErrMalformedResponse, err),
			}
		}
	}

	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if resp.User == nil || token == "" {
		return session.Grant{}, &session.AuthError{Message: session.DefaultAuthMessage, Status: status, Err: session.ErrMalformedGrant}
	}

	return session.Grant{AccessToken: token, TokenType: resp.TokenType, User: *resp.User}, nil
}

// Register creates an account. Input is validated before any request.
func (c *Client) Register(ctx context.Context, in blog.Registration) (*blog.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var user blog.User
	if err := c.doPublic(ctx, http.MethodPost, "/users/register", in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) doPublic(ctx context.Context, method, path string, body, out any) error {
	raw, status, err := c.send(ctx, method, path, body, false)
	if err != nil {
		return err
	}
	return decode(raw, status, out)
}
