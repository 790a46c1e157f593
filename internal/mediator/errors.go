package mediator

import "errors"

// Common mediator API errors.
var (
	// ErrNotFound is returned for an unknown category key or language code.
	ErrNotFound = errors.New("no such category or language")
)
