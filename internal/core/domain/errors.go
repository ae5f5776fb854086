package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPattern indicates a narrative pattern failed validation.
	// Returned when a pattern file is loaded, never during analysis.
	ErrInvalidPattern = errors.New("invalid narrative pattern")

	// Upstream Errors.

	// ErrUpstream indicates an upstream data feed returned an unusable response.
	// Signal sources log it and degrade to an empty result.
	ErrUpstream = errors.New("upstream feed failed")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
