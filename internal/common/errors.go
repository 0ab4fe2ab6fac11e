// Package common defines sentinel errors shared across the backend layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorSessionInvalid covers every refresh failure the caller is allowed
	// to see: unknown token, rotated token, bad signature, expired token.
	ErrorSessionInvalid = errors.New("invalid session")

	// Token lifecycle errors. Internal diagnostics only; both collapse into
	// ErrorSessionInvalid before crossing the HTTP boundary.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
