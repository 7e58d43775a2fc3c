package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"garasiku/internal/domain"
)

const maxTxAttempts = 3

// RunInTx executes fn inside a SERIALIZABLE transaction and commits only if
// fn returns nil. When Postgres aborts the transaction because a concurrent
// writer invalidated one of our reads, the whole closure is re-run a bounded
// number of times before the conflict surfaces as ErrConcurrencyConflict.
func (s *Store) RunInTx(ctx context.Context, fn func(r *Repositories) error) error {
	var err error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err = s.attempt(ctx, fn)
		if err == nil || !isRetryable(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * 25 * time.Millisecond):
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrConcurrencyConflict, err)
}

func (s *Store) attempt(ctx context.Context, fn func(r *Repositories) error) error {
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(NewRepositories(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// isRetryable reports whether the error is a Postgres serialization failure
// or deadlock, the two conditions safe to resolve by re-running the closure.
func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	return false
}
