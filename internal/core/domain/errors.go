package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidSession indicates a malformed or empty session id.
	ErrInvalidSession = errors.New("invalid session id")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrModelUnavailable indicates the model provider is not configured
	// or not reachable.
	ErrModelUnavailable = errors.New("model provider unavailable")

	// ErrStoreUnavailable indicates durable storage could not be read.
	// Callers should treat this as retryable; history is never fabricated
	// in its place.
	ErrStoreUnavailable = errors.New("message store unavailable")

	// ErrRateLimited indicates the per-session message budget was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
