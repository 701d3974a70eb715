package secrets

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the size of derived keys: 256 bits, as AES-256 requires.
	KeySize = 32

	// MinSecretLength is the shortest master secret accepted.
	MinSecretLength = 32

	salt = "inkhive-secrets-v1"
)

// Derive expands the master secret into an independent key for purpose.
// Different purposes always yield unrelated keys, so one master secret can
// serve both token signing and cookie encryption.
func Derive(secret, purpose string) ([]byte, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	if purpose == "" {
		return nil, ErrEmptyPurpose
	}

	r := hkdf.New(sha256.New, []byte(secret), []byte(salt), []byte(purpose))

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	return key, nil
}

// DeriveString is Derive returning the key as a string, the form expected by
// cookie.New.
func DeriveString(secret, purpose string) (string, error) {
	key, err := Derive(secret, purpose)
	if err != nil {
		return "", err
	}
	return string(key), nil
}
