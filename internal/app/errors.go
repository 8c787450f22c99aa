package app

import "errors"

// Sentinel kinds for recommendation errors.
var (
	// ErrInvalidInput marks a malformed profile or filter selection. It is
	// raised before any filtering or scoring runs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCatalog wraps failures from the external catalog collaborator.
	ErrCatalog = errors.New("catalog error")

	// ErrNotStarted is returned when Recommend is called before Start.
	ErrNotStarted = errors.New("service not started")
)
