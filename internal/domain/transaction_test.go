package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name        string
		tx          Transaction
		expectError error
	}{
		{
			name:        "valid transfer",
			tx:          Transaction{Type: TransactionTypeTransfer, SenderID: "a", ReceiverID: "b", Amount: decimal.NewFromInt(10)},
			expectError: nil,
		},
		{
			name:        "valid deposit",
			tx:          Transaction{Type: TransactionTypeDeposit, SenderID: "a", ReceiverID: "a", Amount: decimal.NewFromInt(10)},
			expectError: nil,
		},
		{
			name:        "transfer to same account",
			tx:          Transaction{Type: TransactionTypeTransfer, SenderID: "a", ReceiverID: "a", Amount: decimal.NewFromInt(10)},
			expectError: ErrSelfTransfer,
		},
		{
			name:        "deposit with foreign sender",
			tx:          Transaction{Type: TransactionTypeDeposit, SenderID: "b", ReceiverID: "a", Amount: decimal.NewFromInt(10)},
			expectError: ErrInvalidTransaction,
		},
		{
			name:        "zero amount",
			tx:          Transaction{Type: TransactionTypeTransfer, SenderID: "a", ReceiverID: "b", Amount: decimal.Zero},
			expectError: ErrInvalidAmount,
		},
		{
			name:        "negative amount",
			tx:          Transaction{Type: TransactionTypeDeposit, SenderID: "a", ReceiverID: "a", Amount: decimal.NewFromInt(-5)},
			expectError: ErrInvalidAmount,
		},
		{
			name:        "unknown type",
			tx:          Transaction{Type: "withdrawal", SenderID: "a", ReceiverID: "b", Amount: decimal.NewFromInt(10)},
			expectError: ErrInvalidTransaction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectError, tt.tx.Validate())
		})
	}
}

func TestTransaction_DirectionAndCounterparty(t *testing.T) {
	transfer := &Transaction{
		Type:          TransactionTypeTransfer,
		SenderID:      "a",
		ReceiverID:    "b",
		SenderEmail:   "a@example.com",
		ReceiverEmail: "b@example.com",
	}

	assert.Equal(t, DirectionDebit, transfer.Direction("a"))
	assert.Equal(t, DirectionCredit, transfer.Direction("b"))
	assert.Equal(t, "b@example.com", transfer.Counterparty("a"))
	assert.Equal(t, "a@example.com", transfer.Counterparty("b"))
	assert.True(t, transfer.Involves("a"))
	assert.False(t, transfer.Involves("c"))

	deposit := &Transaction{Type: TransactionTypeDeposit, SenderID: "a", ReceiverID: "a"}
	assert.Equal(t, DirectionCredit, deposit.Direction("a"))
	assert.Empty(t, deposit.Counterparty("a"))
}

func TestNewAuditEvent(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	tx := &Transaction{
		Type:      TransactionTypeDeposit,
		Amount:    decimal.RequireFromString("25.50"),
		CreatedAt: at,
	}

	event := NewAuditEvent("alice@example.com", tx)

	assert.Equal(t, "alice@example.com", event.User)
	assert.Equal(t, TransactionTypeDeposit, event.Type)
	assert.InDelta(t, 25.50, event.Amount, 0.0001)
	assert.Equal(t, "2026-03-01T12:30:00Z", event.Timestamp)
}
