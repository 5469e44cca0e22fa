// Package apperror holds the error kinds the API exposes to clients.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	Validation
	Unauthenticated
	Forbidden
	NotFound
	Conflict
	Upstream
)

// AppError carries a client-facing message and an optional underlying cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
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

// StatusCode maps the kind to an HTTP status. Conflicts are reported as 400.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case Validation, Conflict:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func NewValidation(message string) *AppError {
	return New(Validation, message, nil)
}

func NewUnauthenticated(message string) *AppError {
	return New(Unauthenticated, message, nil)
}

func NewForbidden(message string) *AppError {
	return New(Forbidden, message, nil)
}

func NewNotFound(message string) *AppError {
	return New(NotFound, message, nil)
}

func NewConflict(message string, err error) *AppError {
	return New(Conflict, message, err)
}

func NewUpstream(message string, err error) *AppError {
	return New(Upstream, message, err)
}

// From returns the first AppError in the chain.
func From(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func Is(err error, kind Kind) bool {
	appErr, ok := From(err)
	return ok && appErr.Kind == kind
}

func IsNotFound(err error) bool {
	return Is(err, NotFound)
}

func IsForbidden(err error) bool {
	return Is(err, Forbidden)
}
