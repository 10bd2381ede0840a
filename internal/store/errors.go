package store

import "errors"

var (
	// ErrNotFound is returned when the targeted record does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicate is returned when a record reuses an existing identifier.
	ErrDuplicate = errors.New("store: duplicate id")
	// ErrInUse is returned when deleting an attendee, speaker, or room that
	// is still referenced by at least one session.
	ErrInUse = errors.New("store: referenced by a session")
	// ErrDanglingReference is returned when a session names a speaker, room,
	// or attendee identifier that does not resolve.
	ErrDanglingReference = errors.New("store: unresolved reference")
	// ErrPersistenceFailure wraps write-through errors. The in-memory state
	// keeps the mutation and remains authoritative; the next successful
	// mutation rewrites every key.
	ErrPersistenceFailure = errors.New("store: persistence failure")
)
