package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// Error codes covering every failure class an action can produce.
const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeConflict     = "CONFLICT"
	CodeAuthFailed   = "AUTH_FAILED"
	CodeAuthRequired = "AUTH_REQUIRED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_ERROR"
)

// DomainError standardizes application errors. Message is always safe
// to show to the caller; Err carries the underlying cause for logs.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Expected reports whether the error is a normal user-facing condition
// rather than a fault.
func (e *DomainError) Expected() bool {
	return e.Code != CodeInternal
}

func NewValidation(message string) error {
	return &DomainError{Code: CodeValidation, Message: message, HTTPStatus: http.StatusBadRequest}
}

func NewConflict(message string) error {
	return &DomainError{Code: CodeConflict, Message: message, HTTPStatus: http.StatusConflict}
}

// NewAuthFailed covers bad credentials. Callers must keep the message
// identical for unknown-account and wrong-password cases.
func NewAuthFailed(message string) error {
	return &DomainError{Code: CodeAuthFailed, Message: message, HTTPStatus: http.StatusUnauthorized}
}

func NewAuthRequired(message string) error {
	return &DomainError{Code: CodeAuthRequired, Message: message, HTTPStatus: http.StatusUnauthorized}
}

func NewForbidden(message string) error {
	return &DomainError{Code: CodeForbidden, Message: message, HTTPStatus: http.StatusForbidden}
}

func NewNotFound(message string) error {
	return &DomainError{Code: CodeNotFound, Message: message, HTTPStatus: http.StatusNotFound}
}

// NewUnexpected wraps a fault with a short user-facing message.
func NewUnexpected(message string, err error) error {
	return &DomainError{Code: CodeInternal, Message: message, HTTPStatus: http.StatusInternalServerError, Err: err}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return &DomainError{Code: CodeNotFound, Message: "Not found", HTTPStatus: http.StatusNotFound, Err: err}
	}
	return &DomainError{
		Code:       CodeInternal,
		Message:    "Something went wrong",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}
