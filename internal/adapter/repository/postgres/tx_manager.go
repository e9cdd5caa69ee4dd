package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/simplebank/internal/usecase"
)

var errForeignTransaction = errors.New("transaction was not started by the postgres TxManager")

type pgxPool interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager implements usecase.TransactionManager.
type TxManager struct {
	pool pgxPool
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool pgxPool) *TxManager {
	return &TxManager{pool: pool}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, translateError(err)
	}

	return &Tx{tx: tx}, nil
}

// Tx wraps a pgx transaction.
type Tx struct {
	tx     pgx.Tx
	closed bool
}

// Commit commits the transaction. pgx closes the transaction whether or not
// the commit succeeds.
func (t *Tx) Commit(ctx context.Context) error {
	t.closed = true
	return translateError(t.tx.Commit(ctx))
}

// Rollback rolls back the transaction. It is a no-op once the transaction
// has been committed.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.closed {
		return nil
	}
	t.closed = true

	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// PgxTx returns the underlying pgx.Tx.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}

func pgxTx(tx usecase.Transaction) (pgx.Tx, error) {
	ptx, ok := tx.(*Tx)
	if !ok || ptx == nil {
		return nil, errForeignTransaction
	}
	return ptx.PgxTx(), nil
}
