// Package web is the JSON gateway served by "inkhive serve". It owns the
// browser's session (in an encrypted cookie or in Redis) and relays
// resource calls to the blog API with the session's bearer token.
//
// Every response uses the envelope {data, meta, error}. Upstream failures are
// relayed with their status; requests that never reached the API map to 502.
// Login attempts can be throttled per client IP with WithLoginLimiter.
package web
