package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		debitAmount decimal.Decimal
		expectError bool
	}{
		{
			name:        "debit more than balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(150),
			expectError: true,
		},
		{
			name:        "debit exact balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(100),
			expectError: false,
		},
		{
			name:        "debit less than balance",
			balance:     decimal.NewFromInt(100),
			debitAmount: decimal.NewFromInt(50),
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: tt.balance}

			err := acc.ValidateDebit(tt.debitAmount)

			if tt.expectError && err != ErrInsufficientFunds {
				t.Errorf("expected ErrInsufficientFunds, got %v", err)
			}

			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_ApplyDelta(t *testing.T) {
	acc := &Account{Balance: decimal.RequireFromString("70.00")}

	newBalance, err := acc.ApplyDelta(decimal.RequireFromString("25.50"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !newBalance.Equal(decimal.RequireFromString("95.50")) {
		t.Errorf("expected balance 95.50, got %s", newBalance)
	}

	newBalance, err = acc.ApplyDelta(decimal.RequireFromString("-70.01"))
	if err != ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if !newBalance.Equal(acc.Balance) {
		t.Errorf("expected balance to stay at %s, got %s", acc.Balance, newBalance)
	}

	newBalance, err = acc.ApplyDelta(decimal.RequireFromString("-70.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !newBalance.IsZero() {
		t.Errorf("expected zero balance, got %s", newBalance)
	}
}

func TestProfileUpdate_Apply(t *testing.T) {
	email := "  New@Example.com "
	name := "Alice Doe"
	acc := &Account{Email: "old@example.com", Phone: "123"}

	ProfileUpdate{Email: &email, FullName: &name}.Apply(acc)

	if acc.Email != "new@example.com" {
		t.Errorf("expected normalized email, got %q", acc.Email)
	}
	if acc.FullName != name {
		t.Errorf("expected full name %q, got %q", name, acc.FullName)
	}
	if acc.Phone != "123" {
		t.Errorf("expected phone to be untouched, got %q", acc.Phone)
	}
}
