package jwt

import "errors"

var (
	ErrMissingSigningKey       = errors.New("jwt.missing_signing_key")
	ErrMissingClaims           = errors.New("jwt.missing_claims")
	ErrInvalidToken            = errors.New("jwt.invalid_token")
	ErrInvalidSignature        = errors.New("jwt.invalid_signature")
	ErrUnexpectedSigningMethod = errors.New("jwt.unexpected_signing_method")
	ErrInvalidClaims           = errors.New("jwt.invalid_claims")
	ErrExpiredToken            = errors.New("jwt.expired")
	ErrInvalidIssuer           = errors.New("jwt.invalid_issuer")
)
