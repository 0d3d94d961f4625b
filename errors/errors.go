// Package errors provides error handling for PRX.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints and details for user-facing messages
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Check errors
//	if errors.Is(err, errors.ErrNotFound) {
//	    // handle not found
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint      = crdb.WithHint
	WithHintf     = crdb.WithHintf
	WithDetail    = crdb.WithDetail
	WithDetailf   = crdb.WithDetailf
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
)

// Error inspection and marking
var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
	Join      = crdb.Join
	Mark      = crdb.Mark
)

// Sentinel errors shared across PRX packages.
// Use with errors.Is() for type-safe checking; wrap with errors.Wrap()
// to add context while preserving the type.
var (
	// ErrNotFound indicates a prompt, file, or record does not exist
	ErrNotFound = New("not found")

	// ErrInvalidName indicates a prompt name that violates the [a-z0-9_]+ rule
	ErrInvalidName = New("invalid prompt name")

	// ErrDuplicateName indicates a prompt with that name already exists
	ErrDuplicateName = New("duplicate prompt name")

	// ErrNotRegularFile indicates a file reference points at something
	// other than a regular file (directory, socket, ...)
	ErrNotRegularFile = New("not a regular file")

	// ErrCommandFailed indicates a shell command exited non-zero or could
	// not be spawned
	ErrCommandFailed = New("command failed")

	// ErrInvalidConfig indicates a configuration value failed validation
	ErrInvalidConfig = New("invalid configuration")
)

// IsNotFound checks if an error is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsDuplicateName checks if an error is or wraps ErrDuplicateName.
func IsDuplicateName(err error) bool {
	return err != nil && Is(err, ErrDuplicateName)
}

// WrapNotFound wraps an error as a not-found error with context.
func WrapNotFound(err error, context string) error {
	return Wrap(Wrap(ErrNotFound, err.Error()), context)
}

// NewNotFoundf creates a not-found error with a formatted message.
func NewNotFoundf(format string, args ...interface{}) error {
	return Wrap(ErrNotFound, Newf(format, args...).Error())
}

// NewInvalidConfigf creates a config-validation error with a formatted message.
func NewInvalidConfigf(format string, args ...interface{}) error {
	return Wrap(ErrInvalidConfig, Newf(format, args...).Error())
}
