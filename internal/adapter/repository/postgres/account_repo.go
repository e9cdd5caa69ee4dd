package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/domain"
	"github.com/iho/simplebank/internal/infrastructure/postgres/generated"
	"github.com/iho/simplebank/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository on the users table.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepositoryWithDB(pool)
}

func newAccountRepositoryWithDB(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// Create creates a new account. Email uniqueness is enforced by the
// users_email_key index.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	err := r.queries.CreateUser(ctx, generated.CreateUserParams{
		ID:             account.ID,
		Email:          account.Email,
		Balance:        decimalToNumeric(account.Balance),
		OpeningBalance: decimalToNumeric(account.OpeningBalance),
		PasswordHash:   account.CredentialHash,
		FullName:       account.FullName,
		Phone:          account.Phone,
		Address:        account.Address,
		AccountNumber:  account.AccountNumber,
		Version:        account.Version,
		CreatedAt:      timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(account.UpdatedAt),
	})

	return translateError(err)
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row, err := r.queries.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, translateError(err)
	}

	return rowToAccount(row), nil
}

// GetByEmail retrieves an account by email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row, err := r.queries.GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, translateError(err)
	}

	return rowToAccount(row), nil
}

// GetByIDsForUpdate retrieves multiple accounts with FOR UPDATE row locks
// taken in ascending id order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	ptx, err := pgxTx(tx)
	if err != nil {
		return nil, err
	}

	rows, err := r.queries.WithTx(ptx).GetUsersByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, translateError(err)
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// ApplyDelta adds delta to the balance with a single conditional update, so
// the balance can never go negative even without a prior row lock.
func (r *AccountRepository) ApplyDelta(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	ptx, err := pgxTx(tx)
	if err != nil {
		return decimal.Zero, err
	}
	queries := r.queries.WithTx(ptx)

	balance, err := queries.ApplyBalanceDelta(ctx, generated.ApplyBalanceDeltaParams{
		Delta: decimalToNumeric(delta),
		ID:    id,
	})
	if err == nil {
		return numericToDecimal(balance), nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, translateError(err)
	}

	exists, err := queries.UserExists(ctx, id)
	if err != nil {
		return decimal.Zero, translateError(err)
	}
	if !exists {
		return decimal.Zero, domain.ErrAccountNotFound
	}

	return decimal.Zero, domain.ErrInsufficientFunds
}

// UpdateProfile updates the non-nil profile fields.
func (r *AccountRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate, updatedAt time.Time) (*domain.Account, error) {
	row, err := r.queries.UpdateUserProfile(ctx, generated.UpdateUserProfileParams{
		Email:     stringToPgText(update.Email),
		FullName:  stringToPgText(update.FullName),
		Phone:     stringToPgText(update.Phone),
		Address:   stringToPgText(update.Address),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
		ID:        id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, translateError(err)
	}

	return rowToAccount(row), nil
}

// UpdatePassword replaces the stored password hash.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id, hash string, updatedAt time.Time) error {
	rows, err := r.queries.UpdateUserPassword(ctx, generated.UpdateUserPasswordParams{
		PasswordHash: hash,
		UpdatedAt:    timeToPgTimestamptz(updatedAt),
		ID:           id,
	})
	if err != nil {
		return translateError(err)
	}
	if rows == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// AssignAccountNumber sets the account number unless one is already set.
func (r *AccountRepository) AssignAccountNumber(ctx context.Context, id, number string) (string, error) {
	assigned, err := r.queries.AssignAccountNumber(ctx, generated.AssignAccountNumberParams{
		AccountNumber: number,
		ID:            id,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrAccountNotFound
		}

		return "", translateError(err)
	}

	return assigned, nil
}

func rowToAccount(row generated.User) *domain.Account {
	return &domain.Account{
		ID:             row.ID,
		Email:          row.Email,
		Balance:        numericToDecimal(row.Balance),
		OpeningBalance: numericToDecimal(row.OpeningBalance),
		CredentialHash: row.PasswordHash,
		FullName:       row.FullName,
		Phone:          row.Phone,
		Address:        row.Address,
		AccountNumber:  row.AccountNumber,
		Version:        row.Version,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
