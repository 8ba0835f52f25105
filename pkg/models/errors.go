package models

import "errors"

// Domain error kinds. Services wrap these with context via fmt.Errorf and %w;
// the HTTP layer branches on them with errors.Is. Storage failures are never
// mapped into these kinds.
var (
	// ErrNotFound means an entity lookup by identifier failed.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRange means start/end ordering is wrong or the input is past-dated.
	ErrInvalidRange = errors.New("invalid range")

	// ErrInvalidAvailability means a new availability overlaps an existing one
	// for that worker and date.
	ErrInvalidAvailability = errors.New("invalid availability")

	// ErrOverlappingShift means a new shift overlaps an existing shift for that
	// worker and date.
	ErrOverlappingShift = errors.New("overlapping shift")

	// ErrInvalidOverride covers every override rejection: missing shift, date
	// mismatch, range outside shift bounds, overlapping override, override
	// already taken, claim outside bounds, taker is the current owner.
	ErrInvalidOverride = errors.New("invalid override")

	// ErrConflict means a uniqueness rule was violated (duplicate email or org code).
	ErrConflict = errors.New("conflict")
)
