package model

import "errors"

// Error classes understood by the HTTP layer. Anything else is an internal failure.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

// ErrMissingIdentity is returned when an operation runs without a caller identity.
var ErrMissingIdentity error = &DomainError{kind: ErrInvalidInput, message: "User ID not found in request"}

// DomainError carries a client facing message and unwraps to its error class.
type DomainError struct {
	kind    error
	message string
}

func (e *DomainError) Error() string {
	return e.message
}

func (e *DomainError) Unwrap() error {
	return e.kind
}

func InvalidInput(message string) error {
	return &DomainError{kind: ErrInvalidInput, message: message}
}

func NotFound(message string) error {
	return &DomainError{kind: ErrNotFound, message: message}
}

func Unauthorized(message string) error {
	return &DomainError{kind: ErrUnauthorized, message: message}
}

func Conflict(message string) error {
	return &DomainError{kind: ErrConflict, message: message}
}
