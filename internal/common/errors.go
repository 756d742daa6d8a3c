// Package common defines shared constants and sentinel errors used across
// the dashboard components. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound         = errors.New("not found")
	ErrDuplicateAccount = errors.New("account already exists")

	// Validation errors, rejected before any write.
	ErrInvalidRole = errors.New("invalid role")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("invalid username or password")
	ErrForbidden    = errors.New("permission denied")

	// Storage lifecycle errors.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Auth token errors (invalid, malformed or expired token).
	ErrInvalidToken = errors.New("invalid token")
)
