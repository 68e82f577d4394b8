// Package apperr defines the error kinds shared by the authentication and
// profile services and their mapping onto HTTP responses.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation is returned when a required field is missing
	ErrValidation = errors.New("missing fields")
	// ErrDuplicateEmail is returned when the email is already registered
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized is returned when the session token does not resolve
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when the session is live but its user row is gone
	ErrNotFound = errors.New("user not found")
	// ErrNoFields is returned when a profile update carries nothing to change
	ErrNoFields = errors.New("nothing to update")
	// ErrOperation marks store, hasher or registry failures
	ErrOperation = errors.New("operation failed")
)

// Operation wraps an infrastructure failure so that it matches ErrOperation
// while still unwrapping to its cause.
func Operation(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrOperation, op, err)
}

// StatusCode maps an error kind to the HTTP status returned to clients.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrNoFields):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// messages holds the client-facing text of each kind.
var messages = []struct {
	kind error
	text string
}{
	{ErrValidation, "Missing fields"},
	{ErrDuplicateEmail, "Email already registered"},
	{ErrInvalidCredentials, "Invalid credentials"},
	{ErrUnauthorized, "Unauthorized"},
	{ErrNotFound, "User not found"},
	{ErrNoFields, "Nothing to update"},
}

// Message returns the client-facing message for err. Operation failures and
// unknown errors never leak their cause.
func Message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.kind) {
			return m.text
		}
	}
	return "Internal server error"
}
