package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyContent indicates a document with no readable content.
	// Analysis is all-or-nothing: empty input never produces a partial result.
	ErrEmptyContent = errors.New("empty content")

	// ErrInvalidPattern indicates a rule pattern that failed to compile.
	// Pattern errors are caught per-pattern and scored as zero; this error
	// is surfaced only when a rule is added or updated with a bad pattern.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidCategory indicates a category outside the closed set.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrExtractorUnavailable indicates no extractor is configured.
	// The analyzer cannot run without one.
	ErrExtractorUnavailable = errors.New("extractor unavailable")

	// ErrIndexUnavailable indicates the index store is not configured.
	ErrIndexUnavailable = errors.New("index store unavailable")
)
