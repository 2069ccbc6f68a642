// Package errors defines the application error type shared by editcore's
// HTTP surface and its file I/O implementations. The batch applier and the
// renderer report failure reasons as data; pkg/httpapi returns those
// reasons as plain strings in its batch response and uses AppError for
// request-level failures.
package errors

import "fmt"

// Type classifies an AppError so that transport layers (HTTP, CLI) can map
// it to a status code or exit code without inspecting the message text.
type Type string

const (
	ValidationError Type = "validation_error"
	NotFoundError   Type = "not_found_error"
	ConflictError   Type = "conflict_error"
	IOError         Type = "io_error"
	AmbiguousError  Type = "ambiguous_error"
	InternalError   Type = "internal_error"
)

// AppError is a typed error carrying a user-facing message and optional
// structured details (e.g. which file, which block index).
type AppError struct {
	Type    Type
	Message string
	Details map[string]interface{}
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// New builds an AppError with no details and no wrapped cause.
func New(t Type, message string) *AppError {
	return &AppError{Type: t, Message: message}
}

// Wrap builds an AppError around an existing error, preserving it for
// errors.Unwrap/errors.Is chains.
func Wrap(t Type, message string, cause error) *AppError {
	return &AppError{Type: t, Message: message, cause: cause}
}

// WithDetails attaches structured details and returns the receiver, so call
// sites can build an AppError in one expression.
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}
