package services

import (
	"errors"
	"fmt"
)

var (
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrDuplicateAccount   = errors.New("email already registered")
	ErrPersistence        = errors.New("user store operation failed")
	ErrInvalidCredentials = errors.New("not registered or wrong password")
	ErrAuthInternal       = errors.New("authentication provider failed")

	// ErrOAuthAutoRegisterDisabled is returned when a federated identity has
	// no local account and auto-registration is turned off
	ErrOAuthAutoRegisterDisabled = errors.New("oauth auto-registration disabled")
)

// ValidationError carries the first field violation of a submitted form.
// The message is safe to show to the user verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}
