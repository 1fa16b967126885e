// Package apperr defines the error kinds the HTTP layer maps to status codes.
// Every error leaving a repo or service wraps exactly one of these sentinels
// so callers can branch with errors.Is instead of string matching.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation: missing or malformed client input.
	ErrValidation = errors.New("validation error")
	// ErrStorage: the underlying store failed; safe to retry.
	ErrStorage = errors.New("transient storage error")
	// ErrUpstream: the catalog API failed or timed out; safe to retry.
	ErrUpstream = errors.New("upstream catalog error")
	// ErrIntegrity: persisted data is inconsistent (e.g. price type without a value).
	ErrIntegrity = errors.New("data integrity error")
	// ErrTransition: illegal subscription state transition.
	ErrTransition = errors.New("invalid state transition")
)

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func Storage(err error) error {
	return fmt.Errorf("%w: %v", ErrStorage, err)
}

func Upstream(err error) error {
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}

func Integrity(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIntegrity, fmt.Sprintf(format, args...))
}

func Transition(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTransition, fmt.Sprintf(format, args...))
}
