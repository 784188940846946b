package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceTimeout indicates a provider exceeded its deadline.
	// Treated as an empty contribution, never surfaced to callers.
	ErrSourceTimeout = errors.New("source timeout")

	// ErrSourceFailure indicates a provider failed (network error,
	// malformed response). Treated the same as ErrSourceTimeout.
	ErrSourceFailure = errors.New("source failure")

	// ErrSessionClosed indicates input was submitted to a detached session.
	ErrSessionClosed = errors.New("query session closed")

	// ErrBackendUnavailable indicates the application backend API
	// could not be reached.
	ErrBackendUnavailable = errors.New("backend unavailable")
)
