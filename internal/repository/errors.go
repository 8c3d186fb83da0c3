package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"shortly/internal/database"
)

var (
	// ErrNotFound is returned when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate record")
	// ErrConstraint is returned for other integrity constraint violations.
	ErrConstraint = errors.New("constraint violation")
	// ErrInvalidFilter is returned for filters or field sets that name
	// unknown columns or are otherwise malformed.
	ErrInvalidFilter = errors.New("invalid filter")
)

const (
	uniqueViolation       = pq.ErrorCode("23505")
	integrityViolationCls = pq.ErrorClass("23")
)

// DuplicateError carries the violated constraint. It matches ErrDuplicate.
type DuplicateError struct {
	Constraint string
	Detail     string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate record (constraint %s)", e.Constraint)
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// StoreError wraps any other driver or connection failure.
type StoreError = database.StoreError

// classify maps a driver error onto the repository error kinds.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrConstraint) || errors.Is(err, ErrInvalidFilter) {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == uniqueViolation:
			return &DuplicateError{Constraint: pqErr.Constraint, Detail: pqErr.Detail}
		case pqErr.Code.Class() == integrityViolationCls:
			return fmt.Errorf("%w: %s: %s", ErrConstraint, pqErr.Constraint, pqErr.Message)
		}
	}
	return &StoreError{Op: op, Err: err}
}

// CountsAsFailure reports whether err says something about the health of
// the database. Lookups that miss and writes rejected by constraints do not.
func CountsAsFailure(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrConstraint),
		errors.Is(err, ErrInvalidFilter),
		errors.Is(err, context.Canceled):
		return false
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return true
	}
	// Errors from layers above the repository (validation, business
	// rules) returned through a transaction scope are not store failures.
	return false
}
