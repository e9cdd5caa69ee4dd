package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a customer account holding a balance.
type Account struct {
	ID             string
	Email          string
	Balance        decimal.Decimal
	OpeningBalance decimal.Decimal
	CredentialHash string
	FullName       string
	Phone          string
	Address        string
	AccountNumber  string
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProfileUpdate holds the mutable profile fields of an account.
// Nil fields are left unchanged. Password is plaintext and never stored;
// an empty password means no change.
type ProfileUpdate struct {
	Email    *string
	FullName *string
	Phone    *string
	Address  *string
	Password *string
}

// HasProfileFields reports whether any field other than the password is set.
func (u ProfileUpdate) HasProfileFields() bool {
	return u.Email != nil || u.FullName != nil || u.Phone != nil || u.Address != nil
}

// ChangesPassword reports whether the update carries a new password.
func (u ProfileUpdate) ChangesPassword() bool {
	return u.Password != nil && *u.Password != ""
}

// ValidateDebit checks if account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDelta returns the balance after adding a signed delta, or
// ErrInsufficientFunds if the result would be negative.
func (a *Account) ApplyDelta(delta decimal.Decimal) (decimal.Decimal, error) {
	next := a.Balance.Add(delta)
	if next.IsNegative() {
		return a.Balance, ErrInsufficientFunds
	}
	return next, nil
}

// Apply merges a profile update into the account.
func (u ProfileUpdate) Apply(a *Account) {
	if u.Email != nil {
		a.Email = NormalizeEmail(*u.Email)
	}
	if u.FullName != nil {
		a.FullName = *u.FullName
	}
	if u.Phone != nil {
		a.Phone = *u.Phone
	}
	if u.Address != nil {
		a.Address = *u.Address
	}
}
