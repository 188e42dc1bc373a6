package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a domain error so the transport layer can pick a
// status code without string matching.
type ErrorKind string

const (
	// KindValidation is malformed or missing caller input. The error carries
	// every field violation found, not just the first.
	KindValidation ErrorKind = "validation"
	// KindInvalidArgument is a value outside a fixed enumeration.
	KindInvalidArgument ErrorKind = "invalid_argument"
	// KindNotFound is a missing target entity of a read, update or delete.
	KindNotFound ErrorKind = "not_found"
	// KindReferenceNotFound is a missing entity behind a reference field.
	KindReferenceNotFound ErrorKind = "reference_not_found"
	// KindStoreUnavailable is a persistence layer failure.
	KindStoreUnavailable ErrorKind = "store_unavailable"
)

// FieldViolation describes a single invalid input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the domain error carried between services and handlers.
type Error struct {
	Kind       ErrorKind        `json:"kind"`
	Message    string           `json:"message"`
	Violations []FieldViolation `json:"violations,omitempty"`
	cause      error
}

func (e *Error) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Message
	}
	return fmt.Sprintf("%s: %s [%s]", e.Kind, e.Message, strings.Join(parts, "; "))
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewValidation builds a validation error from accumulated violations.
func NewValidation(violations []FieldViolation) *Error {
	return &Error{Kind: KindValidation, Message: "invalid input", Violations: violations}
}

// NewInvalidArgument reports a value outside a fixed set.
func NewInvalidArgument(message string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: message}
}

// NewNotFound reports a missing target entity.
func NewNotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// NewReferenceNotFound reports a reference field pointing at a missing entity.
func NewReferenceNotFound(field string) *Error {
	return &Error{
		Kind:       KindReferenceNotFound,
		Message:    "referenced " + field + " does not exist",
		Violations: []FieldViolation{{Field: field, Message: "does not exist"}},
	}
}

// NewStoreUnavailable wraps a persistence failure.
func NewStoreUnavailable(cause error) *Error {
	return &Error{Kind: KindStoreUnavailable, Message: "storage unavailable", cause: cause}
}

// KindOf extracts the domain kind from err, or empty when err is not a
// domain error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
