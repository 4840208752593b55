package engine

import "errors"

var (
	// ErrNotFound is returned when an operation that reports a result
	// (rather than a plain no-op) names an unknown id.
	ErrNotFound = errors.New("not found")

	ErrEmptyText  = errors.New("text is required")
	ErrEmptyEntry = errors.New("journal entry is empty")
)
