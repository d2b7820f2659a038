// Package common defines shared constants and sentinel errors used across
// the boardd server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenTypeMismatch = errors.New("token type mismatch")

	// Ownership and rating errors.
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnregistered     = errors.New("registered account required")
	ErrAlreadyRated     = errors.New("already rated")
	ErrPasswordMismatch = errors.New("passwords do not match")
)
