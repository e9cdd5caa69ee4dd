package memory

import (
	"context"
	"sort"

	"github.com/iho/simplebank/internal/domain"
	"github.com/iho/simplebank/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	store *Store
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(store *Store) *LedgerRepository {
	return &LedgerRepository{store: store}
}

// Append stages a record in tx. It becomes visible on commit.
func (r *LedgerRepository) Append(ctx context.Context, tx usecase.Transaction, record *domain.Transaction) (string, error) {
	mtx, err := asTx(tx)
	if err != nil {
		return "", err
	}

	if err := r.store.fail(OpAppend); err != nil {
		return "", err
	}

	cp := *record
	cp.SenderEmail = ""
	cp.ReceiverEmail = ""
	mtx.records = append(mtx.records, &cp)

	return cp.ID, nil
}

// ListForAccount returns records involving the account, newest first.
func (r *LedgerRepository) ListForAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]*domain.Transaction, 0)
	for _, rec := range s.ledger {
		if rec.Involves(accountID) {
			matched = append(matched, rec)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset >= len(matched) {
		return []*domain.Transaction{}, nil
	}
	end := len(matched)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	out := make([]*domain.Transaction, 0, end-offset)
	for _, rec := range matched[offset:end] {
		cp := *rec
		if sender, ok := s.accounts[cp.SenderID]; ok {
			cp.SenderEmail = sender.Email
		}
		if receiver, ok := s.accounts[cp.ReceiverID]; ok {
			cp.ReceiverEmail = receiver.Email
		}
		out = append(out, &cp)
	}

	return out, nil
}

// Len returns the number of committed records.
func (r *LedgerRepository) Len() int {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.ledger)
}
