// Package jwt signs and verifies HS256 JSON Web Tokens.
//
// A Service accepts any JSON-serialisable claims value. Embed StandardClaims
// to get exp/nbf checks and, with WithIssuer, issuer pinning:
//
//	svc, err := jwt.New(key, jwt.WithIssuer("inkhive"))
//	token, err := svc.Generate(claims)
//	err = svc.Parse(token, &claims)
//
// The clock used for temporal checks can be replaced with WithClock.
package jwt
