// Package common defines shared constants and sentinel errors used across
// GophNotes layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Account errors.
	ErrValidation         = errors.New("validation error")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnknownUser        = errors.New("unknown user")

	// Envelope errors.
	ErrAuthenticationFailure = errors.New("envelope authentication failed")
	ErrMalformedEnvelope     = errors.New("malformed envelope")

	// Store errors. A store that cannot be decrypted is never treated as empty.
	ErrStoreCorrupted = errors.New("credential store corrupted")

	// Session errors.
	ErrUnauthenticated = errors.New("not logged in")
)

// ValidationError describes why a username, password or date key was rejected.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError is a shorthand for &ValidationError{Field: field, Reason: reason}.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
