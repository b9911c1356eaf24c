package common

import (
	"errors"
	"fmt"
)

// Relay error taxonomy
var (
	// ErrNotFound - unknown user or correlation; callers decide whether this
	// degrades to "no relationship" or surfaces as "nothing to report"
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists - duplicate insert (e.g. repeated block); absorbed by callers
	ErrAlreadyExists = errors.New("already exists")

	// ErrBlocked - delivery refused because the receiver blocks the sender.
	// Surfaced only to the sender, never to the blocked party.
	ErrBlocked = errors.New("delivery blocked by receiver")

	// ErrBanned - sender is banned from the relay
	ErrBanned = errors.New("sender is banned")

	// ErrPersistence - storage failure; retryable by the gateway layer
	ErrPersistence = errors.New("persistence failure")

	// Admin auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)

// Persistence wraps a storage error into the retryable taxonomy bucket
func Persistence(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
