package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes surfaced in the envelope "code" field.
const (
	CodeBadRequest        = "BAD_REQUEST"
	CodeInvalidParameters = "INVALID_PARAMETERS"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeNotFound          = "NOT_FOUND"
	CodeTooManyRequests   = "TOO_MANY_REQUESTS"
	CodeInternal          = "INTERNAL_ERROR"
)

var statusByCode = map[string]int{
	CodeBadRequest:        http.StatusBadRequest,
	CodeInvalidParameters: http.StatusBadRequest,
	CodeUnauthorized:      http.StatusUnauthorized,
	CodeNotFound:          http.StatusNotFound,
	CodeTooManyRequests:   http.StatusTooManyRequests,
	CodeInternal:          http.StatusInternalServerError,
}

// StatusFor returns the HTTP status bound to an error code.
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code     string
	Message  string
	Status   int
	Metadata map[string]interface{}
	Details  map[string]interface{}
	Err      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance whose status follows the code.
func New(code string, message string) *Error {
	return &Error{Code: code, Status: StatusFor(code), Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, message string) *Error {
	return &Error{Code: code, Status: StatusFor(code), Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrBadRequest        = New(CodeBadRequest, "bad request")
	ErrInvalidParameters = New(CodeInvalidParameters, "invalid parameters")
	ErrUnauthorized      = New(CodeUnauthorized, "unauthorized")
	ErrNotFound          = New(CodeNotFound, "resource not found")
	ErrTooManyRequests   = New(CodeTooManyRequests, "Too many requests")
	ErrInternal          = New(CodeInternal, "Internal server error")
)

// ErrCacheMiss signals that a cache lookup found nothing.
var ErrCacheMiss = errors.New("cache miss")

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	clone.Metadata = copyMap(err.Metadata)
	clone.Details = copyMap(err.Details)
	return &clone
}

// WithMetadata returns a copy carrying an extra metadata entry.
func (e *Error) WithMetadata(key string, value interface{}) *Error {
	clone := Clone(e, "")
	if clone.Metadata == nil {
		clone.Metadata = map[string]interface{}{}
	}
	clone.Metadata[key] = value
	return clone
}

// WithDetails returns a copy carrying an extra details entry.
func (e *Error) WithDetails(key string, value interface{}) *Error {
	clone := Clone(e, "")
	if clone.Details == nil {
		clone.Details = map[string]interface{}{}
	}
	clone.Details[key] = value
	return clone
}

func copyMap(in map[string]interface{}) map[string]interface{} {
	if in == nil {
		return nil
	}
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
