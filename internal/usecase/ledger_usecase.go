package usecase

import (
	"context"

	"github.com/iho/simplebank/internal/domain"
)

// LedgerUseCase handles reads of the transaction log.
type LedgerUseCase struct {
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(accountRepo AccountRepository, ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// ListTransactionsInput represents input for listing an account's history.
type ListTransactionsInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactions returns the transactions involving an account, newest
// first. Every call reads the ledger afresh.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, normalizeError(err)
	}

	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	records, err := uc.ledgerRepo.ListForAccount(ctx, input.AccountID, limit, offset)
	if err != nil {
		return nil, normalizeError(err)
	}

	return records, nil
}
