package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iho/simplebank/internal/domain"
)

// UnitOfWork runs a function as one atomic unit against the store.
type UnitOfWork struct {
	txManager TransactionManager
	retrier   Retrier
	timeout   time.Duration
}

// NewUnitOfWork creates a UnitOfWork. retrier may be nil.
func NewUnitOfWork(txManager TransactionManager, retrier Retrier, timeout time.Duration) *UnitOfWork {
	if timeout <= 0 {
		timeout = DefaultTransactionTimeout
	}

	return &UnitOfWork{
		txManager: txManager,
		retrier:   retrier,
		timeout:   timeout,
	}
}

// Run executes fn inside a transaction and commits it. Any error returned by
// fn, or a failed commit, rolls the transaction back.
//
// The unit is detached from the caller's cancellation so that it always ends
// in a definite commit or rollback; it is bounded by the unit timeout instead.
func (u *UnitOfWork) Run(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.timeout)
	defer cancel()

	attempt := func() error {
		return u.runOnce(ctx, fn)
	}

	if u.retrier == nil {
		return normalizeError(attempt())
	}

	return normalizeError(u.retrier.Retry(ctx, attempt))
}

func (u *UnitOfWork) runOnce(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) (err error) {
	tx, err := u.txManager.Begin(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && err == nil {
			err = rbErr
		}
	}()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}
	committed = true

	return nil
}

// normalizeError maps any error into the ledger's taxonomy. Storage errors
// that are not already classified surface as ErrFatal without leaking the
// driver error type to callers.
func normalizeError(err error) error {
	switch {
	case err == nil:
		return nil
	case domain.IsOutcome(err):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", domain.ErrTransientStorage, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrFatal, err)
	}
}
