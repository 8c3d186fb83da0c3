package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Run("no rows becomes not found", func(t *testing.T) {
		err := classify("get", fmt.Errorf("scan: %w", sql.ErrNoRows))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unique violation becomes duplicate", func(t *testing.T) {
		err := classify("create", &pq.Error{Code: "23505", Constraint: "short_urls_short_code_key"})

		assert.ErrorIs(t, err, ErrDuplicate)
		var dup *DuplicateError
		assert.True(t, errors.As(err, &dup))
		assert.Equal(t, "short_urls_short_code_key", dup.Constraint)

		var storeErr *StoreError
		assert.False(t, errors.As(err, &storeErr))
	})

	t.Run("check violation becomes constraint error", func(t *testing.T) {
		err := classify("update", &pq.Error{Code: "23514", Constraint: "short_urls_click_count_check"})
		assert.ErrorIs(t, err, ErrConstraint)
		assert.NotErrorIs(t, err, ErrDuplicate)
	})

	t.Run("anything else becomes store error", func(t *testing.T) {
		cause := errors.New("connection reset by peer")
		err := classify("list", cause)

		var storeErr *StoreError
		assert.True(t, errors.As(err, &storeErr))
		assert.Equal(t, "list", storeErr.Op)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, classify("noop", nil))
	})
}

func TestCountsAsFailure(t *testing.T) {
	assert.False(t, CountsAsFailure(nil))
	assert.False(t, CountsAsFailure(ErrNotFound))
	assert.False(t, CountsAsFailure(&DuplicateError{}))
	assert.False(t, CountsAsFailure(fmt.Errorf("%w: bad", ErrInvalidFilter)))
	assert.False(t, CountsAsFailure(context.Canceled))
	assert.False(t, CountsAsFailure(errors.New("url has expired")))

	assert.True(t, CountsAsFailure(&StoreError{Op: "begin transaction", Err: errors.New("dial tcp: refused")}))
	assert.True(t, CountsAsFailure(fmt.Errorf("create url: %w", &StoreError{Op: "create", Err: errors.New("eof")})))
}
