// Package apperr defines the error taxonomy shared by services and handlers.
// Errors wrap one of the four sentinels below so callers can classify with
// errors.Is and map to an HTTP status at the handler boundary.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed, missing, or out-of-range input.
	ErrValidation = errors.New("validation error")

	// ErrAuthentication marks bad credentials or an invalid/expired token.
	ErrAuthentication = errors.New("authentication error")

	// ErrNotFound marks a missing resource. Resources owned by another user
	// are deliberately reported as not found, never as forbidden.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a uniqueness violation (duplicate review, library
	// entry, or follow).
	ErrConflict = errors.New("conflict")
)

// Validation returns a message wrapped in ErrValidation.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// Conflict returns a message wrapped in ErrConflict.
func Conflict(msg string) error {
	return fmt.Errorf("%w: %s", ErrConflict, msg)
}

// Message strips the sentinel prefix from an error produced by this package,
// leaving the client-facing text.
func Message(err error) string {
	for _, sentinel := range []error{ErrValidation, ErrAuthentication, ErrNotFound, ErrConflict} {
		if errors.Is(err, sentinel) {
			prefix := sentinel.Error() + ": "
			s := err.Error()
			if len(s) > len(prefix) && s[:len(prefix)] == prefix {
				return s[len(prefix):]
			}
			return s
		}
	}
	return err.Error()
}
