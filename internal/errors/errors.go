// Package errors provides the base error kinds used across safestorage.
//
// Module errors wrap one of these kinds so callers can tell apart failures
// that need different remediation: a missing or unreadable configuration,
// an unavailable platform secret store, or data that does not decrypt.
package errors

import (
	"errors"
	"fmt"
)

// Base error kinds.
var (
	// ErrNotFound indicates a required resource (file, secret) does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input could not be parsed, decoded or decrypted.
	ErrInvalidInput = errors.New("invalid input")

	// ErrForbidden indicates the platform refused access to a resource.
	ErrForbidden = errors.New("forbidden")

	// ErrUnavailable indicates a collaborator could not serve the request.
	ErrUnavailable = errors.New("unavailable")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors, discarding nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
