// Package cookie writes and reads HTTP cookies in three flavours: plain,
// HMAC-SHA256 signed and AES-256-GCM encrypted.
//
//	m, err := cookie.New([]string{secret}, cookie.WithSecure(env.IsLive()))
//	name := m.Name("inkhive.session-token") // "__Secure-..." when Secure
//	err = m.SetEncrypted(w, name, token, cookie.WithMaxAge(86400))
//	token, err := m.GetEncrypted(r, name)
//
// Defaults are Path=/, HttpOnly and SameSite=Lax. Cookies whose name starts
// with "__Secure-" are refused unless the Secure attribute is set, matching
// what browsers enforce.
package cookie
