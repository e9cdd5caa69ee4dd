package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo    AccountRepository
	hasher         PasswordHasher
	idGen          IDGenerator
	clock          Clock
	openingBalance decimal.Decimal
	numberFn       func() (string, error)
}

// NewAccountUseCase creates a new AccountUseCase. Every registered account
// starts with openingBalance.
func NewAccountUseCase(
	accountRepo AccountRepository,
	hasher PasswordHasher,
	idGen IDGenerator,
	clock Clock,
	openingBalance decimal.Decimal,
) *AccountUseCase {
	if clock == nil {
		clock = NewMonotonicClock()
	}

	return &AccountUseCase{
		accountRepo:    accountRepo,
		hasher:         hasher,
		idGen:          idGen,
		clock:          clock,
		openingBalance: openingBalance,
		numberFn:       randomAccountNumber,
	}
}

// RegisterInput represents input for registering an account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	// OpeningBalance overrides the configured opening balance when set.
	OpeningBalance *decimal.Decimal
}

// Register creates a new account.
func (uc *AccountUseCase) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	opening := uc.openingBalance
	if input.OpeningBalance != nil {
		opening = *input.OpeningBalance
	}
	if opening.IsNegative() || !opening.Equal(opening.Truncate(domain.MoneyScale)) {
		return nil, fmt.Errorf("%w: opening balance %s", domain.ErrInvalidAmount, opening)
	}

	if input.FullName != "" {
		if err := domain.ValidateProfileUpdate(domain.ProfileUpdate{FullName: &input.FullName}); err != nil {
			return nil, err
		}
	}

	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", domain.ErrFatal, err)
	}

	now := uc.clock.Now()

	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		Email:          domain.NormalizeEmail(input.Email),
		Balance:        opening,
		OpeningBalance: opening,
		CredentialHash: hash,
		FullName:       input.FullName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// Uniqueness is left to the store so that concurrent registrations
	// of the same email cannot both succeed.
	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, normalizeError(err)
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, normalizeError(err)
	}
	return account, nil
}

// GetProfile retrieves an account and assigns its account number on first read.
func (uc *AccountUseCase) GetProfile(ctx context.Context, id string) (*domain.Account, error) {
	account, err := uc.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	if account.AccountNumber != "" {
		return account, nil
	}

	number, err := uc.numberFn()
	if err != nil {
		return nil, fmt.Errorf("%w: generate account number: %v", domain.ErrFatal, err)
	}

	// A concurrent first read may have won; the store returns whichever
	// number was kept.
	assigned, err := uc.accountRepo.AssignAccountNumber(ctx, id, number)
	if err != nil {
		return nil, normalizeError(err)
	}
	account.AccountNumber = assigned

	return account, nil
}

// UpdateProfile changes the mutable profile fields of an account and, when
// a non-empty password is given, its credentials. Profile fields are written
// first so that a duplicate email leaves the password untouched.
func (uc *AccountUseCase) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.Account, error) {
	if err := domain.ValidateProfileUpdate(update); err != nil {
		return nil, err
	}

	if update.Email != nil {
		normalized := domain.NormalizeEmail(*update.Email)
		update.Email = &normalized
	}

	var hash string
	if update.ChangesPassword() {
		var err error
		hash, err = uc.hasher.Hash(*update.Password)
		if err != nil {
			return nil, fmt.Errorf("%w: hash password: %v", domain.ErrFatal, err)
		}
	}
	update.Password = nil

	now := uc.clock.Now()

	var account *domain.Account
	if update.HasProfileFields() || hash == "" {
		updated, err := uc.accountRepo.UpdateProfile(ctx, id, update, now)
		if err != nil {
			return nil, normalizeError(err)
		}
		account = updated
	}

	if hash == "" {
		return account, nil
	}

	if err := uc.accountRepo.UpdatePassword(ctx, id, hash, now); err != nil {
		return nil, normalizeError(err)
	}

	if account == nil {
		return uc.GetAccount(ctx, id)
	}
	account.CredentialHash = hash

	return account, nil
}

// AuthenticateInput represents authentication input.
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies credentials and returns the account they belong to.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (uc *AccountUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if errors.Is(err, domain.ErrAccountNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, normalizeError(err)
	}

	if err := uc.hasher.Compare(account.CredentialHash, input.Password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return account, nil
}

var accountNumberSpace = big.NewInt(1_000_000)

func randomAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, accountNumberSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%06d", AccountNumberPrefix, n.Int64()), nil
}
