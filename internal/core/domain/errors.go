package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by every "X not found" sentinel below.
var ErrNotFound = errors.New("not found")

var (
	ErrAppointmentNotFound = fmt.Errorf("appointment %w", ErrNotFound)
	ErrOrderNotFound       = fmt.Errorf("order %w", ErrNotFound)
	ErrPrincipalNotFound   = fmt.Errorf("principal %w", ErrNotFound)
	ErrServiceNotFound     = fmt.Errorf("service %w", ErrNotFound)
	ErrProductNotFound     = fmt.Errorf("product %w", ErrNotFound)
	ErrTokenNotFound       = fmt.Errorf("access token %w", ErrNotFound)

	ErrDuplicateIdentity = errors.New("identity already registered")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrUnknownReference  = errors.New("referenced row does not exist")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("access forbidden")

	ErrPersistence = errors.New("persistence failure")
)

// ReferenceError reports a foreign key pointing at a missing row. Column is
// the referencing column as named in storage, empty when unknown.
// errors.Is(err, ErrUnknownReference) reports true for any ReferenceError.
type ReferenceError struct {
	Column string
}

func (e *ReferenceError) Error() string {
	if e.Column == "" {
		return ErrUnknownReference.Error()
	}
	return fmt.Sprintf("%s: %s", ErrUnknownReference, e.Column)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrUnknownReference }

// PersistenceError carries the underlying storage cause of a failed write.
// errors.Is(err, ErrPersistence) reports true for any PersistenceError.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// Persistence wraps err as a PersistenceError unless it is nil or already one.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}
