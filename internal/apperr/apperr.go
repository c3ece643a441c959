package apperr

import (
	"fmt"
	"net/http"
)

// Kind discriminates error envelopes across every operation.
type Kind string

const (
	KindUnauthenticated     Kind = "unauthenticated"
	KindForbidden           Kind = "forbidden"
	KindValidationFailed    Kind = "validation_failed"
	KindDuplicateConflict   Kind = "duplicate_conflict"
	KindReferentialConflict Kind = "referential_conflict"
	KindNotFound            Kind = "not_found"
	KindInternalFailure     Kind = "internal_failure"
)

// FieldError carries per-field validation detail.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the single error shape services return and handlers render.
// Wrapped infrastructure errors stay server-side; only Kind, Message and
// Fields are serialized.
type Error struct {
	Kind    Kind         `json:"kind"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Status maps the kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindValidationFailed:
		return http.StatusBadRequest
	case KindDuplicateConflict, KindReferentialConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func Unauthenticated(message string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Validation(message string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidationFailed, Message: message, Fields: fields}
}

func Duplicate(message string) *Error {
	return &Error{Kind: KindDuplicateConflict, Message: message}
}

func Referential(message string) *Error {
	return &Error{Kind: KindReferentialConflict, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Internal wraps an infrastructure error behind a generic message. The cause
// is kept for server-side logging and never serialized.
func Internal(err error) *Error {
	return &Error{Kind: KindInternalFailure, Message: "internal server error", cause: err}
}

// From returns err as *Error, wrapping unknown errors as internal failures.
func From(err error) *Error {
	if appErr, ok := err.(*Error); ok {
		return appErr
	}
	return Internal(err)
}
