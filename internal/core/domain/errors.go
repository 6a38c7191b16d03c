package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrBackendUnavailable indicates no classification backend could be initialised.
	// The orchestrator falls back to the keyword heuristic.
	ErrBackendUnavailable = errors.New("classification backend unavailable")

	// ErrAmbiguousResponse indicates a model answer contained no usable verdict.
	ErrAmbiguousResponse = errors.New("ambiguous classification response")

	// ErrRateLimited indicates the search API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrPersistence indicates an output or checkpoint file could not be written.
	ErrPersistence = errors.New("persistence failure")

	// ErrUnsupportedProvider indicates an unknown AI provider name.
	ErrUnsupportedProvider = errors.New("unsupported provider")
)
