package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	// Create fails with domain.ErrEmailTaken when the email is already in use.
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	// GetByIDsForUpdate locks the accounts in ascending id order for the
	// lifetime of tx. Missing ids are omitted from the result.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	// ApplyDelta atomically adds a signed delta to the balance and returns the
	// new balance. It fails with domain.ErrInsufficientFunds if the result
	// would be negative.
	ApplyDelta(ctx context.Context, tx Transaction, id string, delta decimal.Decimal) (decimal.Decimal, error)
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate, updatedAt time.Time) (*domain.Account, error)
	// UpdatePassword replaces the stored credential hash.
	UpdatePassword(ctx context.Context, id, hash string, updatedAt time.Time) error
	// AssignAccountNumber sets the account number only if none is set and
	// returns the number the account ends up with.
	AssignAccountNumber(ctx context.Context, id, number string) (string, error)
}

// LedgerRepository defines data access for the append-only transaction log.
type LedgerRepository interface {
	Append(ctx context.Context, tx Transaction, record *domain.Transaction) (string, error)
	// ListForAccount returns records involving the account, newest first.
	ListForAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error)
}

// ReconciliationRepository defines the aggregate queries used to verify
// that balances agree with the ledger.
type ReconciliationRepository interface {
	// Totals returns Σbalance, Σopening balance and Σdeposits.
	Totals(ctx context.Context) (balances, openings, deposits decimal.Decimal, err error)
	// AccountDiscrepancies returns the accounts whose balance differs from
	// opening + credits - debits according to the ledger.
	AccountDiscrepancies(ctx context.Context) ([]AccountDiscrepancy, error)
}

// AccountDiscrepancy is an account whose stored balance disagrees with its ledger.
type AccountDiscrepancy struct {
	AccountID         string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
}

// Transaction represents a storage transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	// Rollback must be safe to call after Commit.
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation on storage conflicts such as deadlocks.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Notifier delivers audit events to an external sink. Implementations are
// invoked only after commit and their errors never affect the operation.
type Notifier interface {
	Notify(ctx context.Context, event domain.AuditEvent) error
}

// PasswordHasher hashes and verifies account credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// IdempotencyStore remembers the responses of completed mutating requests.
type IdempotencyStore interface {
	// Reserve claims key for ttl. When the key is already taken it returns
	// claimed=false and the stored response, which is nil while the first
	// request is still in flight.
	Reserve(ctx context.Context, key string, ttl time.Duration) (claimed bool, stored []byte, err error)
	// Complete stores the final response for a claimed key.
	Complete(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a claim so the request can be retried.
	Release(ctx context.Context, key string) error
}
