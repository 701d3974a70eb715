// Package secrets derives purpose-bound keys from a single master secret
// (AUTH_SECRET) using HKDF-SHA256 from golang.org/x/crypto/hkdf.
package secrets
