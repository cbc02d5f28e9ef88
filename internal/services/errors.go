package services

import (
	"errors"
	"fmt"

	"foodgram/internal/repositories"
)

var (
	// ErrNotFound is returned for an unknown recipe, user, tag or ingredient
	// and for removing a membership that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when adding a favorite, cart entry or
	// subscription that already exists, or registering a taken username/email.
	ErrConflict = errors.New("already exists")
	// ErrPermissionDenied is returned when a user mutates a recipe they do not own.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrSelfFollow is returned when a user tries to subscribe to themselves.
	ErrSelfFollow = errors.New("cannot subscribe to yourself")
	// ErrEmptyCart is returned when building the shopping list of an empty cart.
	ErrEmptyCart = errors.New("shopping cart is empty")
	// ErrInvalidCredentials is returned by Login for any bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError rejects malformed input and names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// translate maps repository sentinels onto service sentinels, keeping the
// original error in the chain.
func translate(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("%w: %s (%v)", ErrNotFound, msg, err)
	case errors.Is(err, repositories.ErrDuplicate):
		return fmt.Errorf("%w: %s (%v)", ErrConflict, msg, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
