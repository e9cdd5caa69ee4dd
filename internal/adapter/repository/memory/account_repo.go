package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/domain"
	"github.com/iho/simplebank/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	email := domain.NormalizeEmail(account.Email)
	if _, taken := s.byEmail[email]; taken {
		return domain.ErrEmailTaken
	}

	cp := *account
	cp.Email = email
	s.accounts[cp.ID] = &cp
	s.byEmail[email] = cp.ID

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	acc, ok := r.store.snapshot(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return acc, nil
}

// GetByEmail retrieves an account by email.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	s := r.store
	s.mu.RLock()
	id, ok := s.byEmail[domain.NormalizeEmail(email)]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return r.GetByID(ctx, id)
}

// GetByIDsForUpdate locks the accounts in ascending id order and returns
// them as seen by tx. Missing ids are omitted.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	mtx, err := asTx(tx)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(ids))
	for _, id := range uniqueSorted(ids) {
		if !r.store.exists(id) {
			continue
		}
		if err := mtx.lock(ctx, id); err != nil {
			return nil, err
		}

		acc, _ := mtx.view(id)
		accounts = append(accounts, acc)
	}

	return accounts, nil
}

// ApplyDelta stages balance + delta in tx.
func (r *AccountRepository) ApplyDelta(ctx context.Context, tx usecase.Transaction, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	mtx, err := asTx(tx)
	if err != nil {
		return decimal.Zero, err
	}

	if !r.store.exists(id) {
		return decimal.Zero, domain.ErrAccountNotFound
	}
	if err := mtx.lock(ctx, id); err != nil {
		return decimal.Zero, err
	}

	if err := r.store.fail(OpApplyDelta); err != nil {
		return decimal.Zero, err
	}

	acc, _ := mtx.view(id)
	next, err := acc.ApplyDelta(delta)
	if err != nil {
		return decimal.Zero, err
	}

	mtx.balances[id] = stagedBalance{balance: next}

	return next, nil
}

// UpdateProfile updates the profile fields of an account.
func (r *AccountRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate, updatedAt time.Time) (*domain.Account, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	acc := *current
	update.Apply(&acc)

	if acc.Email != current.Email {
		if owner, taken := s.byEmail[acc.Email]; taken && owner != id {
			return nil, domain.ErrEmailTaken
		}
		delete(s.byEmail, current.Email)
		s.byEmail[acc.Email] = id
	}

	acc.UpdatedAt = updatedAt
	s.accounts[id] = &acc

	cp := acc
	return &cp, nil
}

// UpdatePassword replaces the credential hash of an account.
func (r *AccountRepository) UpdatePassword(ctx context.Context, id, hash string, updatedAt time.Time) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}

	acc := *current
	acc.CredentialHash = hash
	acc.UpdatedAt = updatedAt
	s.accounts[id] = &acc

	return nil
}

// AssignAccountNumber sets the account number if none is set.
func (r *AccountRepository) AssignAccountNumber(ctx context.Context, id, number string) (string, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.accounts[id]
	if !ok {
		return "", domain.ErrAccountNotFound
	}
	if current.AccountNumber != "" {
		return current.AccountNumber, nil
	}

	acc := *current
	acc.AccountNumber = number
	s.accounts[id] = &acc

	return number, nil
}
