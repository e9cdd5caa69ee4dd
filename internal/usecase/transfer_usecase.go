package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/domain"
)

// OperationRecorder observes the outcome of engine operations.
type OperationRecorder interface {
	RecordOperation(operation string, err error, amount decimal.Decimal, duration time.Duration)
}

// TransferUseCase is the transfer engine: it executes deposits and transfers
// as atomic, balance-checked units against the account store and the ledger.
type TransferUseCase struct {
	unit        *UnitOfWork
	accountRepo AccountRepository
	ledgerRepo  LedgerRepository
	notifier    Notifier
	idGen       IDGenerator
	clock       Clock
	recorder    OperationRecorder
	logger      zerolog.Logger
}

// TransferUseCaseConfig holds the collaborators of the transfer engine.
type TransferUseCaseConfig struct {
	Unit        *UnitOfWork
	AccountRepo AccountRepository
	LedgerRepo  LedgerRepository
	Notifier    Notifier
	IDGen       IDGenerator
	Clock       Clock
	Recorder    OperationRecorder
	Logger      *zerolog.Logger
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(cfg TransferUseCaseConfig) *TransferUseCase {
	uc := &TransferUseCase{
		unit:        cfg.Unit,
		accountRepo: cfg.AccountRepo,
		ledgerRepo:  cfg.LedgerRepo,
		notifier:    cfg.Notifier,
		idGen:       cfg.IDGen,
		clock:       cfg.Clock,
		recorder:    cfg.Recorder,
		logger:      zerolog.Nop(),
	}

	if uc.clock == nil {
		uc.clock = NewMonotonicClock()
	}
	if cfg.Logger != nil {
		uc.logger = *cfg.Logger
	}

	return uc
}

// DepositInput represents input for a deposit.
type DepositInput struct {
	AccountID string
	Amount    decimal.Decimal
}

// TransferInput represents input for a transfer. Receiver is an email
// address or an account ID.
type TransferInput struct {
	SenderID string
	Receiver string
	Amount   decimal.Decimal
}

// OperationResult is the outcome of a committed deposit or transfer.
type OperationResult struct {
	Transaction *domain.Transaction
	// Balance is the acting account's balance after commit.
	Balance decimal.Decimal
}

// Deposit credits amount to the account and records a deposit.
func (uc *TransferUseCase) Deposit(ctx context.Context, input DepositInput) (result *OperationResult, err error) {
	start := time.Now()
	defer func() { uc.record("deposit", err, input.Amount, start) }()

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var account *domain.Account
	result = &OperationResult{}

	err = uc.unit.Run(ctx, func(ctx context.Context, tx Transaction) error {
		accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, []string{input.AccountID})
		if err != nil {
			return err
		}
		if len(accounts) != 1 {
			return domain.ErrAccountNotFound
		}
		account = accounts[0]

		newBalance, err := uc.accountRepo.ApplyDelta(ctx, tx, account.ID, input.Amount)
		if err != nil {
			return err
		}

		record := &domain.Transaction{
			ID:         uc.idGen.Generate(),
			Type:       domain.TransactionTypeDeposit,
			SenderID:   account.ID,
			ReceiverID: account.ID,
			Amount:     input.Amount,
			CreatedAt:  uc.clock.Now(),
		}
		if err := uc.append(ctx, tx, record); err != nil {
			return err
		}

		record.SenderEmail = account.Email
		record.ReceiverEmail = account.Email
		result.Transaction = record
		result.Balance = newBalance

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, account.Email, result.Transaction)

	return result, nil
}

// Transfer moves amount from the sender to the receiver and records a single
// transfer linking both accounts.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (result *OperationResult, err error) {
	start := time.Now()
	defer func() { uc.record("transfer", err, input.Amount, start) }()

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	receiver, err := uc.resolveReceiver(ctx, input.Receiver)
	if err != nil {
		return nil, err
	}

	if receiver.ID == input.SenderID {
		return nil, domain.ErrSelfTransfer
	}

	// Lock order is ascending account id for every unit (deadlock prevention).
	ids := []string{input.SenderID, receiver.ID}
	sort.Strings(ids)

	var sender *domain.Account
	result = &OperationResult{}

	err = uc.unit.Run(ctx, func(ctx context.Context, tx Transaction) error {
		accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
		if err != nil {
			return err
		}

		locked := make(map[string]*domain.Account, len(accounts))
		for _, a := range accounts {
			locked[a.ID] = a
		}

		sender = locked[input.SenderID]
		if sender == nil {
			return domain.ErrAccountNotFound
		}
		lockedReceiver := locked[receiver.ID]
		if lockedReceiver == nil {
			return domain.ErrReceiverNotFound
		}

		// The sender may have changed its email since resolution.
		if domain.NormalizeEmail(sender.Email) == domain.NormalizeEmail(lockedReceiver.Email) {
			return domain.ErrSelfTransfer
		}

		if err := sender.ValidateDebit(input.Amount); err != nil {
			return err
		}

		senderBalance, err := uc.accountRepo.ApplyDelta(ctx, tx, sender.ID, input.Amount.Neg())
		if err != nil {
			return err
		}

		if _, err := uc.accountRepo.ApplyDelta(ctx, tx, lockedReceiver.ID, input.Amount); err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return domain.ErrReceiverNotFound
			}
			return err
		}

		record := &domain.Transaction{
			ID:         uc.idGen.Generate(),
			Type:       domain.TransactionTypeTransfer,
			SenderID:   sender.ID,
			ReceiverID: lockedReceiver.ID,
			Amount:     input.Amount,
			CreatedAt:  uc.clock.Now(),
		}
		if err := uc.append(ctx, tx, record); err != nil {
			return err
		}

		record.SenderEmail = sender.Email
		record.ReceiverEmail = lockedReceiver.Email
		result.Transaction = record
		result.Balance = senderBalance

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notify(ctx, sender.Email, result.Transaction)

	return result, nil
}

func (uc *TransferUseCase) resolveReceiver(ctx context.Context, ref string) (*domain.Account, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, domain.ErrReceiverNotFound
	}

	var (
		account *domain.Account
		err     error
	)
	if strings.Contains(ref, "@") {
		account, err = uc.accountRepo.GetByEmail(ctx, domain.NormalizeEmail(ref))
	} else {
		account, err = uc.accountRepo.GetByID(ctx, ref)
	}

	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, domain.ErrReceiverNotFound
	}
	if err != nil {
		return nil, normalizeError(err)
	}

	return account, nil
}

func (uc *TransferUseCase) append(ctx context.Context, tx Transaction, record *domain.Transaction) error {
	if err := record.Validate(); err != nil {
		return err
	}

	_, err := uc.ledgerRepo.Append(ctx, tx, record)
	return err
}

// notify hands the event to the notifier. The operation has already
// committed, so failures are only logged.
func (uc *TransferUseCase) notify(ctx context.Context, user string, record *domain.Transaction) {
	if uc.notifier == nil {
		return
	}

	event := domain.NewAuditEvent(user, record)
	if err := uc.notifier.Notify(context.WithoutCancel(ctx), event); err != nil {
		uc.logger.Warn().
			Err(err).
			Str("transaction_id", record.ID).
			Str("type", string(record.Type)).
			Msg("audit notification failed")
	}
}

func (uc *TransferUseCase) record(operation string, err error, amount decimal.Decimal, start time.Time) {
	if uc.recorder != nil {
		uc.recorder.RecordOperation(operation, err, amount, time.Since(start))
	}

	if err != nil && !domain.IsRejection(err) {
		uc.logger.Error().
			Err(err).
			Str("operation", operation).
			Str("amount", amount.String()).
			Msg("ledger operation failed")
	}
}
