package service_test

import (
	"context"
	"sync/atomic"
	"time"

	"shortly/internal/database"
)

var testNow = time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// fakeStore runs units of work directly, without a database. When err is
// set every unit of work fails with it before fn runs.
type fakeStore struct {
	err   error
	txs   atomic.Int32
	reads atomic.Int32
}

func (s *fakeStore) InTx(ctx context.Context, fn database.TxFunc) error {
	s.txs.Add(1)
	if s.err != nil {
		return s.err
	}
	return fn(ctx, nil)
}

func (s *fakeStore) Read(ctx context.Context, fn database.TxFunc) error {
	s.reads.Add(1)
	if s.err != nil {
		return s.err
	}
	return fn(ctx, nil)
}

func ptr[T any](v T) *T { return &v }
