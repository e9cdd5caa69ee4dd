package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Operation errors
	ErrInvalidAmount      = errors.New("amount must be positive with at most two decimal places")
	ErrReceiverNotFound   = errors.New("receiver not found")
	ErrSelfTransfer       = errors.New("cannot transfer to yourself")
	ErrInvalidTransaction = errors.New("invalid transaction record")

	// Storage errors
	ErrTransientStorage = errors.New("temporary storage failure, safe to retry")
	ErrFatal            = errors.New("internal ledger failure")

	// ErrInconsistentLedger means balances disagree with the recorded transactions.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: balances do not match recorded transactions")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidToken       = errors.New("invalid token")
	ErrExpiredToken       = errors.New("token has expired")
)

// outcomeErrors are the results an operation may legitimately end with.
// Anything else reaching the use-case boundary is a malfunction.
var outcomeErrors = []error{
	ErrAccountNotFound,
	ErrEmailTaken,
	ErrInsufficientFunds,
	ErrInvalidAmount,
	ErrReceiverNotFound,
	ErrSelfTransfer,
	ErrInvalidTransaction,
	ErrInvalidEmail,
	ErrInvalidProfile,
	ErrPasswordTooWeak,
	ErrInvalidCredentials,
	ErrTransientStorage,
	ErrFatal,
	ErrInconsistentLedger,
}

// IsOutcome reports whether err belongs to the ledger's error taxonomy.
func IsOutcome(err error) bool {
	for _, target := range outcomeErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsRejection reports whether err is a correctly rejected request rather
// than a system malfunction.
func IsRejection(err error) bool {
	if err == nil {
		return false
	}
	return IsOutcome(err) &&
		!errors.Is(err, ErrTransientStorage) &&
		!errors.Is(err, ErrFatal) &&
		!errors.Is(err, ErrInconsistentLedger)
}
