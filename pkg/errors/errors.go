package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Public renders the error without its cause, for display to the operator.
func (e *AppError) Public() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrValidation
	ErrReference
	ErrConstraint
	ErrConflict
	ErrStore
)

func (c ErrorCode) String() string {
	switch c {
	case ErrNotFound:
		return "not_found"
	case ErrBadRequest:
		return "bad_request"
	case ErrUnauthorized:
		return "unauthorized"
	case ErrForbidden:
		return "forbidden"
	case ErrValidation:
		return "validation"
	case ErrReference:
		return "reference"
	case ErrConstraint:
		return "constraint"
	case ErrConflict:
		return "conflict"
	case ErrStore:
		return "store"
	default:
		return "internal"
	}
}

// NewValidation reports malformed or out-of-policy input for a single field.
func NewValidation(field, reason string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Field:   field,
		Message: reason,
	}
}

func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

// NewReference reports an operation that points at an entity which does not exist.
func NewReference(resource string, id int64) *AppError {
	return &AppError{
		Code:    ErrReference,
		Message: fmt.Sprintf("%s with ID %d does not exist", resource, id),
	}
}

// NewConstraint reports a violated business rule.
func NewConstraint(message string) *AppError {
	return &AppError{
		Code:    ErrConstraint,
		Message: message,
	}
}

func NewConflict(field, message string) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Field:   field,
		Message: message,
	}
}

// NewStore wraps a persistence failure. The message never reaches the user verbatim.
func NewStore(op string, err error) *AppError {
	return &AppError{
		Code:    ErrStore,
		Message: fmt.Sprintf("store operation %q failed", op),
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal error",
		Err:     err,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: message,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: message,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or ErrInternal.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}
	return CodeOf(err) == code
}

// As exposes the standard library lookup so callers need only one errors import.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

func IsNotFound(err error) bool   { return Is(err, ErrNotFound) }
func IsValidation(err error) bool { return Is(err, ErrValidation) }
