package service

import (
	"errors"
	"fmt"

	"shortly/internal/repository"
	"shortly/internal/resilience"
)

// Kind classifies service errors. Controllers map each kind to one HTTP
// status and use it as the machine readable error code.
type Kind string

const (
	KindValidation   Kind = "VALIDATION_ERROR"
	KindConflict     Kind = "CONFLICT"
	KindNotFound     Kind = "NOT_FOUND"
	KindExpired      Kind = "EXPIRED"
	KindGeneration   Kind = "GENERATION_ERROR"
	KindStore        Kind = "STORE_ERROR"
	KindUnavailable  Kind = "SERVICE_UNAVAILABLE"
	KindTracking     Kind = "TRACKING_ERROR"
	KindUnauthorized Kind = "UNAUTHORIZED"
)

// Error is the error type returned across the service boundary.
type Error struct {
	Kind    Kind
	Message string
	// Fields carries per-field messages for validation errors.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or KindStore for foreign errors.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindStore
}

// IsKind reports whether err is a service error of kind k.
func IsKind(err error, k Kind) bool {
	var svcErr *Error
	return errors.As(err, &svcErr) && svcErr.Kind == k
}

func newError(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func validationError(field, msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: map[string]string{field: msg}}
}

func notFound(code string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("URL with code '%s' not found", code)}
}

func expired(code string) *Error {
	return &Error{Kind: KindExpired, Message: fmt.Sprintf("URL with code '%s' has expired", code)}
}

// fromStore translates repository and resilience errors. Errors that are
// already service errors pass through unchanged.
func fromStore(op string, err error) error {
	if err == nil {
		return nil
	}

	var svcErr *Error
	if errors.As(err, &svcErr) {
		return err
	}

	var openErr *resilience.CircuitOpenError
	switch {
	case errors.As(err, &openErr):
		return newError(KindUnavailable, "database temporarily unavailable", err)
	case errors.Is(err, resilience.ErrOperationTimeout):
		return newError(KindUnavailable, "database operation timed out", err)
	case errors.Is(err, repository.ErrNotFound):
		return newError(KindNotFound, "record not found", err)
	case errors.Is(err, repository.ErrDuplicate):
		return newError(KindConflict, "record already exists", err)
	case errors.Is(err, repository.ErrInvalidFilter), errors.Is(err, repository.ErrConstraint):
		return newError(KindValidation, "invalid request", err)
	default:
		return newError(KindStore, "failed to "+op, err)
	}
}
