package application

import (
	"errors"

	"github.com/example/eventflow/internal/store"
)

var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("application: not found")
	// ErrInUse is returned when a deletion is refused because at least one
	// session still references the target.
	ErrInUse = errors.New("application: in use")
	// ErrDanglingReference is returned when a session names a speaker, room,
	// or attendee that does not exist.
	ErrDanglingReference = errors.New("application: dangling reference")
	// ErrPersistenceFailure is returned when a mutation succeeded in memory
	// but could not be written through to durable storage.
	ErrPersistenceFailure = errors.New("application: persistence failure")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// mapStoreError translates store sentinels into the application taxonomy.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrInUse):
		return ErrInUse
	case errors.Is(err, store.ErrDanglingReference):
		return ErrDanglingReference
	case errors.Is(err, store.ErrPersistenceFailure):
		return errors.Join(ErrPersistenceFailure, err)
	}
	return err
}
