package handler

import (
	"context"
	"time"

	"github.com/iho/simplebank/internal/domain"
	"github.com/iho/simplebank/internal/usecase"
)

// AccountService is the account use case as seen by the handlers.
type AccountService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error)
	GetProfile(ctx context.Context, id string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Account, error)
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.Account, error)
}

// TransferService is the transfer engine as seen by the handlers.
type TransferService interface {
	Deposit(ctx context.Context, input usecase.DepositInput) (*usecase.OperationResult, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.OperationResult, error)
}

// LedgerService lists ledger records.
type LedgerService interface {
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

// ReconciliationService checks ledger consistency.
type ReconciliationService interface {
	Reconcile(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// TokenIssuer issues bearer tokens for authenticated accounts.
type TokenIssuer interface {
	Generate(account *domain.Account) (string, error)
	TokenDuration() time.Duration
}
