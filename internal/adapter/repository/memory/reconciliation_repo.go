package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/domain"
	"github.com/iho/simplebank/internal/usecase"
)

// ReconciliationRepository implements usecase.ReconciliationRepository.
type ReconciliationRepository struct {
	store *Store
}

// NewReconciliationRepository creates a new ReconciliationRepository.
func NewReconciliationRepository(store *Store) *ReconciliationRepository {
	return &ReconciliationRepository{store: store}
}

// Totals returns Σbalance, Σopening balance and Σdeposits.
func (r *ReconciliationRepository) Totals(ctx context.Context) (balances, openings, deposits decimal.Decimal, err error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, acc := range s.accounts {
		balances = balances.Add(acc.Balance)
		openings = openings.Add(acc.OpeningBalance)
	}

	for _, rec := range s.ledger {
		if rec.Type == domain.TransactionTypeDeposit {
			deposits = deposits.Add(rec.Amount)
		}
	}

	return balances, openings, deposits, nil
}

// AccountDiscrepancies returns accounts whose balance differs from
// opening + credits - debits.
func (r *ReconciliationRepository) AccountDiscrepancies(ctx context.Context) ([]usecase.AccountDiscrepancy, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	calculated := make(map[string]decimal.Decimal, len(s.accounts))
	for id, acc := range s.accounts {
		calculated[id] = acc.OpeningBalance
	}

	for _, rec := range s.ledger {
		switch rec.Type {
		case domain.TransactionTypeDeposit:
			calculated[rec.ReceiverID] = calculated[rec.ReceiverID].Add(rec.Amount)
		case domain.TransactionTypeTransfer:
			calculated[rec.SenderID] = calculated[rec.SenderID].Sub(rec.Amount)
			calculated[rec.ReceiverID] = calculated[rec.ReceiverID].Add(rec.Amount)
		}
	}

	discrepancies := make([]usecase.AccountDiscrepancy, 0)
	for id, acc := range s.accounts {
		if !acc.Balance.Equal(calculated[id]) {
			discrepancies = append(discrepancies, usecase.AccountDiscrepancy{
				AccountID:         id,
				RecordedBalance:   acc.Balance,
				CalculatedBalance: calculated[id],
			})
		}
	}

	sort.Slice(discrepancies, func(i, j int) bool {
		return discrepancies[i].AccountID < discrepancies[j].AccountID
	})

	return discrepancies, nil
}
