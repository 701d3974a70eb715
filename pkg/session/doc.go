// Package session owns the authenticated identity of a blog API client.
//
// A Manager exchanges credentials for an access token through an
// Authenticator, stores the resulting Session in a Store and hands the token
// out until the session expires. Sessions live for a fixed 24 hours from
// issuance and expire lazily: an expired record stays in the store but is
// never returned.
//
//	m := session.New(
//		session.WithAuthenticator(apiClient),
//		session.WithStore(session.NewFileStore(path)),
//	)
//	sess, err := m.Authenticate(ctx, blog.Credentials{Username: "alice", Password: "…"})
//	token, ok := m.AccessToken(ctx)
//	err = m.End(ctx)
//
// # Errors
//
// Authenticate reports invalid input as validator.ValidationErrors before any
// network call, and rejected credentials as *AuthError. A failed exchange
// clears any previously stored session. Current returns ErrSessionNotFound or
// ErrSessionExpired; IsAbsent matches both.
//
// # Stores
//
//   - MemoryStore keeps the session for the life of the process.
//   - FileStore writes JSON atomically with 0600 permissions.
//   - CookieStore seals the session in a signed JWT inside an encrypted
//     cookie, one store per HTTP request.
//   - ServerSideStore keeps the session in a Backend such as RedisStore and
//     only its ID in a signed cookie.
//
// Session replacement is serialized by the Manager; the credential exchange
// itself runs unlocked.
//
// # HTTP
//
// Middleware builds a Manager per request and places it in the context.
// ContextTokens reads the token back from there so a single API client can be
// shared across requests.
package session
