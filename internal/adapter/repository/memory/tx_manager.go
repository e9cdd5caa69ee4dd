package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/domain"
	"github.com/iho/simplebank/internal/usecase"
)

var errForeignTransaction = errors.New("transaction does not belong to the memory store")

// TxManager implements usecase.TransactionManager.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Tx{
		store:    m.store,
		held:     make(map[string]struct{}),
		balances: make(map[string]stagedBalance),
	}, nil
}

type stagedBalance struct {
	balance decimal.Decimal
}

// Tx stages writes until commit and holds the account locks it acquired.
type Tx struct {
	store    *Store
	held     map[string]struct{}
	order    []string
	balances map[string]stagedBalance
	records  []*domain.Transaction
	done     bool
}

// Commit publishes the staged writes and releases the account locks.
func (t *Tx) Commit(ctx context.Context) error {
	if t.done {
		return errors.New("transaction already finished")
	}

	if err := t.store.fail(OpCommit); err != nil {
		return err
	}

	t.store.publish(t.balances, t.records)
	t.finish()

	return nil
}

// Rollback discards the staged writes and releases the account locks. It is
// a no-op after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.finish()
	return nil
}

func (t *Tx) finish() {
	t.done = true
	t.balances = nil
	t.records = nil

	for i := len(t.order) - 1; i >= 0; i-- {
		t.store.accountLock(t.order[i]).Release(1)
	}
	t.order = nil
	t.held = nil
}

// lock acquires the account lock unless this transaction already holds it.
func (t *Tx) lock(ctx context.Context, id string) error {
	if t.done {
		return errors.New("transaction already finished")
	}
	if _, ok := t.held[id]; ok {
		return nil
	}

	if err := t.store.fail(OpLock); err != nil {
		return err
	}

	if err := t.store.accountLock(id).Acquire(ctx, 1); err != nil {
		return fmt.Errorf("%w: lock account %s: %v", domain.ErrTransientStorage, id, err)
	}

	t.held[id] = struct{}{}
	t.order = append(t.order, id)

	return nil
}

// view returns the account as seen inside this transaction.
func (t *Tx) view(id string) (*domain.Account, bool) {
	acc, ok := t.store.snapshot(id)
	if !ok {
		return nil, false
	}
	if staged, ok := t.balances[id]; ok {
		acc.Balance = staged.balance
	}
	return acc, true
}

func asTx(tx usecase.Transaction) (*Tx, error) {
	mtx, ok := tx.(*Tx)
	if !ok || mtx == nil {
		return nil, errForeignTransaction
	}
	return mtx, nil
}
