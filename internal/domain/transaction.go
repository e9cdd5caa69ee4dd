package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the kind of money movement.
type TransactionType string

const (
	TransactionTypeDeposit  TransactionType = "deposit"
	TransactionTypeTransfer TransactionType = "transfer"
)

// Direction is the effect of a transaction on a given account.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Transaction is an immutable ledger record of a committed money movement.
// Amount is always positive; the direction follows from Type and the parties.
// A transfer is a single record linking both accounts.
type Transaction struct {
	ID         string
	Type       TransactionType
	SenderID   string
	ReceiverID string
	Amount     decimal.Decimal
	CreatedAt  time.Time

	// Populated on read from the accounts table.
	SenderEmail   string
	ReceiverEmail string
}

// Validate validates a record before it is appended.
func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	switch t.Type {
	case TransactionTypeDeposit:
		if t.ReceiverID == "" || t.SenderID != t.ReceiverID {
			return ErrInvalidTransaction
		}
	case TransactionTypeTransfer:
		if t.SenderID == "" || t.ReceiverID == "" {
			return ErrInvalidTransaction
		}
		if t.SenderID == t.ReceiverID {
			return ErrSelfTransfer
		}
	default:
		return ErrInvalidTransaction
	}

	return nil
}

// Involves reports whether the account is a party of the transaction.
func (t *Transaction) Involves(accountID string) bool {
	return t.SenderID == accountID || t.ReceiverID == accountID
}

// Direction returns how the transaction affects accountID.
func (t *Transaction) Direction(accountID string) Direction {
	if t.Type == TransactionTypeTransfer && t.SenderID == accountID {
		return DirectionDebit
	}
	return DirectionCredit
}

// Counterparty returns the email of the other party, or "" for deposits.
func (t *Transaction) Counterparty(accountID string) string {
	if t.Type != TransactionTypeTransfer {
		return ""
	}
	if t.SenderID == accountID {
		return t.ReceiverEmail
	}
	return t.SenderEmail
}
