package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/inkhive/pkg/logger"
	"github.com/dmitrymomot/inkhive/pkg/requestid"
)

// maxErrorBody caps how much of a failed response is read.
const maxErrorBody = 64 << 10

// Client is the single way to reach the blog API. It keeps no state between
// calls: every request reads the current token from its TokenSource.
type Client struct {
	baseURL       string
	http          *http.Client
	timeout       time.Duration
	tokens        TokenSource
	loginEncoding LoginEncoding
	userAgent     string
	logger        *slog.Logger
}

// New returns a Client for the API at baseURL, which must be an absolute URL.
// Requests are anonymous until WithTokenSource is given.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		tokens:        noTokens{},
		loginEncoding: LoginJSON,
		userAgent:     "inkhive",
		logger:        logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}

	return c, nil
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request sends body (if non-nil) as JSON to path and returns the raw JSON
// response. The bearer token of the current session is attached when there
// is one.
//
// Any non-2xx response yields *APIError with the server's error text or
// DefaultErrorMessage. A request that produced no response yields *APIError
// with Status 0 wrapping ErrTransport. An empty 2xx body yields nil.
func (c *Client) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	raw, _, err := c.send(ctx, method, path, body, true)
	return raw, err
}

// Do is Request followed by decoding the response into out. A nil out
// discards the body.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	raw, status, err := c.send(ctx, method, path, body, true)
	if err != nil {
		return err
	}
	return decode(raw, status, out)
}

func (c *Client) send(ctx context.Context, method, path string, body any, authenticated bool) (json.RawMessage, int, error) {
	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}
		reader, contentType = bytes.NewReader(data), "application/json"
	}
	return c.sendRaw(ctx, method, path, reader, contentType, authenticated)
}

func (c *Client) sendRaw(ctx context.Context, method, path string, body io.Reader, contentType string, authenticated bool) (json.RawMessage, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, 0, transportError(err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	requestid.Propagate(ctx, req.Header)
	if authenticated {
		if token, ok := c.tokens.AccessToken(ctx); ok {
			(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "api request failed",
			logger.HTTPRequest(method, path, 0),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return nil, 0, transportError(err)
	}
	defer resp.Body.Close()

	log := c.logger.With(logger.HTTPRequest(method, path, resp.StatusCode), logger.Duration(time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{Message: errorMessage(data), Status: resp.StatusCode}
		log.DebugContext(ctx, "api request rejected", slog.String("message", apiErr.Message))
		return nil, resp.StatusCode, apiErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, transportError(err)
	}
	log.DebugContext(ctx, "api request completed")

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, resp.StatusCode, nil
	}
	if !json.Valid(data) {
		return nil, resp.StatusCode, &APIError{Message: DefaultErrorMessage, Status: resp.StatusCode, Err: ErrMalformedResponse}
	}
	return json.RawMessage(data), resp.StatusCode, nil
}

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

func decode(raw json.RawMessage, status int, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{Message: DefaultErrorMessage, Status: status, Err: errors.Join(ErrMalformedResponse, err)}
	}
	return nil
}

// errorMessage extracts the server's error text from a failed response,
// looking at "error", then "message", then "detail".
func errorMessage(data []byte) string {
	var body struct {
		Error   json.RawMessage `json:"error"`
		Message json.RawMessage `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return DefaultErrorMessage
	}

	for _, field := range []json.RawMessage{body.Error, body.Message, body.Detail} {
		if msg := messageText(field); msg != "" {
			return msg
		}
	}
	return DefaultErrorMessage
}

// messageText reads a string, an object with "message" or "msg", or a list
// of those.
func messageText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if json.Unmarshal(raw, &s) == nil {
		return strings.TrimSpace(s)
	}

	var obj struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
	}
	if json.Unmarshal(raw, &obj) == nil {
		if obj.Message != "" {
			return obj.Message
		}
		return obj.Msg
	}

	var list []json.RawMessage
	if json.Unmarshal(raw, &list) == nil {
		msgs := make([]string, 0, len(list))
		for _, item := range list {
			if msg := messageText(item); msg != "" {
				msgs = append(msgs, msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
