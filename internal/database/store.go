package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shortly/internal/resilience"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx. Repositories take it as an
// explicit argument so the caller owns the transaction scope.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// StoreError wraps a driver or connection failure. It is the only error
// kind that says the database itself is unhealthy.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error during %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// TxFunc is one unit of work against the database.
type TxFunc func(ctx context.Context, q DBTX) error

// Store hands out transaction scopes. Every scope runs through the circuit
// breaker when one is configured.
type Store struct {
	db      *sql.DB
	breaker *resilience.CircuitBreaker
}

// NewStore wraps db. breaker may be nil.
func NewStore(db *sql.DB, breaker *resilience.CircuitBreaker) *Store {
	return &Store{db: db, breaker: breaker}
}

// InTx runs fn in a read-write transaction. It commits when fn returns nil
// and rolls back on error or panic.
func (s *Store) InTx(ctx context.Context, fn TxFunc) error {
	return s.run(ctx, nil, fn)
}

// Read runs fn in a read-only transaction.
func (s *Store) Read(ctx context.Context, fn TxFunc) error {
	return s.run(ctx, &sql.TxOptions{ReadOnly: true}, fn)
}

// Ping checks connectivity outside the breaker so health checks keep
// reporting the real database state while the circuit is open.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Breaker returns the configured breaker, or nil.
func (s *Store) Breaker() *resilience.CircuitBreaker {
	return s.breaker
}

// DB exposes the pool for migrations and shutdown.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) run(ctx context.Context, opts *sql.TxOptions, fn TxFunc) error {
	if s.breaker == nil {
		return s.transact(ctx, opts, fn)
	}
	return s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.transact(ctx, opts, fn)
	})
}

func (s *Store) transact(ctx context.Context, opts *sql.TxOptions, fn TxFunc) (err error) {
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return &StoreError{Op: "begin transaction", Err: err}
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}
	}()

	if err = fn(ctx, tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return &StoreError{Op: "commit transaction", Err: err}
	}
	return nil
}
