package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds an atomic unit including lock waits.
	// A unit that exceeds it is rolled back and reported as transient.
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultNotifyTimeout bounds a single audit delivery attempt.
	DefaultNotifyTimeout = 5 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// AccountNumberPrefix prefixes generated customer account numbers.
	AccountNumberPrefix = "ACCT"
)
