// Package common defines sentinel errors shared across the account service.
// Callers should match them with errors.Is; the HTTP layer maps them to
// status codes.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Password-recovery errors. ErrorInvalidOTP covers both a mismatched
	// and an expired code so callers cannot tell the two apart.
	ErrorInvalidEmail = errors.New("invalid email")
	ErrorInvalidOTP   = errors.New("invalid otp")

	// Auth errors (invalid or malformed bearer token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
