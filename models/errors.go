package models

import (
	"errors"
	"fmt"
)

var (
	ErrAccessDenied       = errors.New("access denied")
	ErrNotFound           = errors.New("record not found")
	ErrNoRecords          = errors.New("no records found")
	ErrNoOp               = errors.New("no fields changed")
	ErrDuplicateLogin     = errors.New("login already registered")
	ErrDuplicateItem      = errors.New("item already on the menu")
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrNotSupported       = errors.New("not yet supported")
)

// ValidationError reports a single offending input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
