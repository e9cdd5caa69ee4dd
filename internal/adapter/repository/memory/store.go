// Package memory implements the account store and ledger in process memory.
// It is used by the server when no database is configured and by tests that
// exercise the engine under real concurrency.
package memory

import (
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/iho/simplebank/internal/domain"
)

// Failure injection points.
const (
	OpLock       = "lock"
	OpApplyDelta = "apply_delta"
	OpAppend     = "append"
	OpCommit     = "commit"
)

// FailureHook is consulted before each mutating step. A non-nil error aborts
// the step with that error.
type FailureHook func(op string) error

// Store holds the committed state shared by the memory repositories.
type Store struct {
	// mu guards the committed state. Commits publish under the write lock so
	// readers never observe a partially applied unit.
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	byEmail  map[string]string
	ledger   []*domain.Transaction

	locksMu sync.Mutex
	locks   map[string]*semaphore.Weighted

	hookMu sync.RWMutex
	hook   FailureHook
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*domain.Account),
		byEmail:  make(map[string]string),
		locks:    make(map[string]*semaphore.Weighted),
	}
}

// SetFailureHook installs a hook used to inject storage failures. Pass nil to
// remove it.
func (s *Store) SetFailureHook(hook FailureHook) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.hook = hook
}

func (s *Store) fail(op string) error {
	s.hookMu.RLock()
	defer s.hookMu.RUnlock()
	if s.hook == nil {
		return nil
	}
	return s.hook(op)
}

func (s *Store) accountLock(id string) *semaphore.Weighted {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	sem, ok := s.locks[id]
	if !ok {
		sem = semaphore.NewWeighted(1)
		s.locks[id] = sem
	}
	return sem
}

func (s *Store) exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[id]
	return ok
}

// snapshot returns a copy of the committed account.
func (s *Store) snapshot(id string) (*domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, false
	}
	cp := *acc
	return &cp, true
}

// publish applies staged balances and records atomically.
func (s *Store) publish(balances map[string]stagedBalance, records []*domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, staged := range balances {
		acc := *s.accounts[id]
		acc.Balance = staged.balance
		acc.Version++
		s.accounts[id] = &acc
	}

	s.ledger = append(s.ledger, records...)
}

// AccountCount returns the number of accounts.
func (s *Store) AccountCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

func uniqueSorted(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
