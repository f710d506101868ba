package errors

import (
	"fmt"
)

// Common error values shared across the processing core.
var (
	// Submission errors
	ErrMissingURL     = New("url is required")
	ErrInvalidOptions = New("invalid processing options")

	// Store errors
	ErrJobNotFound        = New("job not found")
	ErrJobNotCompleted    = New("job is not completed yet")
	ErrDatabaseConnection = New("database connection failed")
	ErrQueryFailed        = New("query failed")
	ErrInsertFailed       = New("insert failed")
	ErrUpdateFailed       = New("update failed")

	// Dispatch errors
	ErrQueueFull      = New("job queue is full")
	ErrPoolNotRunning = New("worker pool is not running")

	// Capability errors
	ErrUnsupportedSource = New("unsupported or unreachable source")
	ErrMissingAPIKey     = New("API key is required")
)

// Error is a message plus an optional wrapped cause.
type Error struct {
	message string
	cause   error
}

// New creates a new error.
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: message,
		cause:   err,
	}
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{
		message: fmt.Sprintf(format, args...),
		cause:   err,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is checks if the error matches target by message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.message == t.message
}
