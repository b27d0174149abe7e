package matchdb

import "errors"

// Sentinel errors for the match repository layer. These indicate
// infrastructure-level outcomes; callers decide how to surface them.
var (
	// ErrNotFound indicates the requested match does not exist. Unlike user
	// lookups, a match id only ever comes from a prior create, so a miss here
	// is a real failure.
	ErrNotFound = errors.New("match not found")

	// ErrInvalidTransition indicates a status update that would move the
	// lifecycle backwards or out of a terminal state.
	ErrInvalidTransition = errors.New("invalid match status transition")
)
