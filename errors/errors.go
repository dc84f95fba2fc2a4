// Package errors provides standardized error handling patterns for navtree
// components. It includes error classification, standard error variables, and
// helper functions for consistent error wrapping across the library.
package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorRecoverable represents expected, recoverable conditions the caller
	// should handle as a normal outcome (e.g. a held navigation lock).
	ErrorRecoverable ErrorClass = iota
	// ErrorInvalid represents errors due to invalid input or configuration
	ErrorInvalid
	// ErrorFatal represents unrecoverable errors that should stop processing
	ErrorFatal
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorRecoverable:
		return "recoverable"
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Navigation errors
	ErrNavigationLocked   = errors.New("navigation is locked")
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	ErrInvalidDestination = errors.New("invalid destination")
	ErrNodeClosed         = errors.New("navigation node closed")

	// Send queue errors
	ErrMissingReceiver   = errors.New("no receiver consumed value")
	ErrDuplicateReceiver = errors.New("value already consumed")
	ErrNoPausedValues    = errors.New("no paused values to resume")

	// Persistence errors
	ErrRestorationKeyMismatch = errors.New("restoration key mismatch")
	ErrKeyNotFound            = errors.New("key not found")
	ErrStoreClosed            = errors.New("store closed")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingConfig = errors.New("missing required configuration")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsRecoverable checks if an error is an expected, recoverable condition.
// Lock violations are the canonical case: the caller decides retry/ignore.
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorRecoverable
	}

	return errors.Is(err, ErrNavigationLocked) ||
		errors.Is(err, ErrCheckpointNotFound) ||
		errors.Is(err, ErrNoPausedValues)
}

// IsInvalid checks if an error is due to invalid input
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}

	return errors.Is(err, ErrInvalidDestination) ||
		errors.Is(err, ErrRestorationKeyMismatch) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingConfig)
}

// IsFatal checks if an error is fatal and should stop processing
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}

	return errors.Is(err, ErrStoreClosed)
}

// Classify returns the error class for an error
func Classify(err error) ErrorClass {
	if err == nil {
		return ErrorRecoverable // Default for nil
	}

	if IsFatal(err) {
		return ErrorFatal
	}
	if IsInvalid(err) {
		return ErrorInvalid
	}

	// Navigation is a must-not-crash surface; unknown errors default to
	// recoverable so callers degrade gracefully.
	return ErrorRecoverable
}

// newClassified creates a new classified error
// This is an internal helper - use WrapRecoverable(), WrapFatal(), or WrapInvalid() instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapRecoverable wraps an error as recoverable with context
func WrapRecoverable(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorRecoverable, wrappedErr, component, method, wrappedErr.Error())
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorFatal, wrappedErr, component, method, wrappedErr.Error())
}

// WrapInvalid wraps an error as invalid with context
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorInvalid, wrappedErr, component, method, wrappedErr.Error())
}
