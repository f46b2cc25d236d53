package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to status codes with errors.Is.
var (
	ErrMissingBody        = errors.New("missing body")
	ErrMissingField       = errors.New("missing field")
	ErrInvalidFormat      = errors.New("invalid format")
	ErrForeignKeyNotFound = errors.New("referenced record not found")
	ErrNotFound           = errors.New("record not found")
	ErrUniqueViolation    = errors.New("unique constraint violation")
	ErrNotAssigned        = errors.New("employee not assigned")
)

// Error is a user-facing failure: Message is safe to return to clients and
// Kind classifies it.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Errorf builds an *Error of the given kind.
func Errorf(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// UniqueViolationError is returned by repositories when a write collides with
// a unique column. Field is the JSON name of the column ("email", "dept_code",
// "project_code"), or empty when the constraint is unknown.
type UniqueViolationError struct {
	Field      string
	Constraint string
	Err        error
}

func (e *UniqueViolationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("unique violation on %s", e.Field)
	}
	return fmt.Sprintf("unique violation on constraint %q", e.Constraint)
}

func (e *UniqueViolationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUniqueViolation}
	}
	return []error{ErrUniqueViolation, e.Err}
}

// UniqueField returns the colliding field of a unique violation, if err is one.
func UniqueField(err error) (string, bool) {
	var uv *UniqueViolationError
	if errors.As(err, &uv) {
		return uv.Field, true
	}
	return "", false
}
