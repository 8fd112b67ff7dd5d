package store

import "errors"

var (
	// ErrValidation indicates a missing or malformed field, caught before any mutation.
	ErrValidation = errors.New("validation failed")
	// ErrDuplicateKey indicates a unique-constraint violation on a code, email or username.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrUnknownReference indicates a foreign reference that does not resolve in the snapshot.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrPersistence indicates the snapshot write failed; the in-memory state is unchanged.
	ErrPersistence = errors.New("persistence failed")
	// ErrNoSnapshot is returned by a Backend when no snapshot has been stored yet.
	ErrNoSnapshot = errors.New("no snapshot stored")
)
