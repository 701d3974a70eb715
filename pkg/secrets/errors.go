package secrets

import "errors"

var (
	ErrSecretTooShort      = errors.New("secrets.secret_too_short")
	ErrEmptyPurpose        = errors.New("secrets.empty_purpose")
	ErrKeyDerivationFailed = errors.New("secrets.key_derivation_failed")
)
