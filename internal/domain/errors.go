package domain

import "errors"

// Failure taxonomy shared by the storage and deck layers. Callers are
// expected to match with errors.Is and translate into user-facing messages;
// nothing below is fatal to the process.
var (
	// ErrNotFound is returned when a mutation or lookup references an id
	// that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when a required field is empty after
	// trimming whitespace.
	ErrValidation = errors.New("validation rejected")

	// ErrStorageUnavailable is returned when the underlying medium rejects
	// a read or write. The prior persisted state is unchanged.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrStorageFull is returned when a write is rejected because the
	// medium is out of space.
	ErrStorageFull = errors.New("storage full")
)
