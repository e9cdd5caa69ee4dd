package handler

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/adapter/http/middleware"
	"github.com/iho/simplebank/internal/domain"
	"github.com/iho/simplebank/internal/usecase"
)

var handlerTestTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type accountServiceStub struct {
	registerFn     func(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error)
	getProfileFn   func(ctx context.Context, id string) (*domain.Account, error)
	updateFn       func(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Account, error)
	authenticateFn func(ctx context.Context, input usecase.AuthenticateInput) (*domain.Account, error)
}

func (s *accountServiceStub) Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error) {
	return s.registerFn(ctx, input)
}

func (s *accountServiceStub) GetProfile(ctx context.Context, id string) (*domain.Account, error) {
	return s.getProfileFn(ctx, id)
}

func (s *accountServiceStub) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Account, error) {
	return s.updateFn(ctx, id, update)
}

func (s *accountServiceStub) Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.Account, error) {
	return s.authenticateFn(ctx, input)
}

type transferServiceStub struct {
	depositFn  func(ctx context.Context, input usecase.DepositInput) (*usecase.OperationResult, error)
	transferFn func(ctx context.Context, input usecase.TransferInput) (*usecase.OperationResult, error)
}

func (s *transferServiceStub) Deposit(ctx context.Context, input usecase.DepositInput) (*usecase.OperationResult, error) {
	return s.depositFn(ctx, input)
}

func (s *transferServiceStub) Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.OperationResult, error) {
	return s.transferFn(ctx, input)
}

type ledgerServiceStub struct {
	listFn func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

func (s *ledgerServiceStub) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
	return s.listFn(ctx, input)
}

type reconciliationServiceStub struct {
	reconcileFn func(ctx context.Context) (*usecase.ReconciliationReport, error)
}

func (s *reconciliationServiceStub) Reconcile(ctx context.Context) (*usecase.ReconciliationReport, error) {
	return s.reconcileFn(ctx)
}

type tokenIssuerStub struct {
	token string
	err   error
}

func (s *tokenIssuerStub) Generate(*domain.Account) (string, error) {
	return s.token, s.err
}

func (s *tokenIssuerStub) TokenDuration() time.Duration {
	return time.Hour
}

type authRecorderStub struct {
	calls []error
}

func (s *authRecorderStub) RecordAuth(err error) {
	s.calls = append(s.calls, err)
}

func testAccount(id, email, balance string) *domain.Account {
	return &domain.Account{
		ID:        id,
		Email:     email,
		Balance:   decimal.RequireFromString(balance),
		FullName:  "Test User",
		CreatedAt: handlerTestTime,
		UpdatedAt: handlerTestTime,
	}
}

func authenticated(ctx context.Context, id string) context.Context {
	return middleware.WithAccountID(ctx, id)
}
