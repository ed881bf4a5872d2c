package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error code onto an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadRequest:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrConflict:
		return http.StatusConflict
	case ErrPrecondition:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
	ErrConflict
	ErrPrecondition
)

// Sentinel causes, matched with errors.Is through AppError.Unwrap.
var (
	ErrInUse       = errors.New("record is referenced by other records")
	ErrDuplicateID = errors.New("record identifier already exists")
	ErrInvalidRef  = errors.New("referenced record does not exist")
)

// InUseMessage is shown when a delete is blocked by dependent rows.
const InUseMessage = "This entry cannot be deleted as other records are using it."

// Error constructors
func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
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
		Message: "internal server error",
		Err:     err,
	}
}

// Common errors
func NotFound(resource string, err error) *AppError {
	return NewNotFound(resource, err)
}

func BadRequest(message string, err error) *AppError {
	return NewBadRequest(message, err)
}

func Internal(err error) *AppError {
	return NewInternal(err)
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: message,
	}
}

func Conflict(message string, err error) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Message: message,
		Err:     err,
	}
}

func PreconditionFailed(message string) *AppError {
	return &AppError{
		Code:    ErrPrecondition,
		Message: message,
	}
}

// InvalidID is returned when an identifier does not resolve to a record,
// e.g. "Invalid Department ID".
func InvalidID(label string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("Invalid %s ID", label),
	}
}

// InvalidReference is the validation failure for a referenced ID that does not exist.
func InvalidReference(label string) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: fmt.Sprintf("Invalid %s ID", label),
		Err:     ErrInvalidRef,
	}
}

// InUse is returned when a delete is blocked by referential integrity.
func InUse(err error) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Message: InUseMessage,
		Err:     fmt.Errorf("%w: %v", ErrInUse, err),
	}
}

// As is a shorthand for extracting an *AppError from a wrapped chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
