package domain

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidEmail    = errors.New("invalid email format")
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrPasswordTooWeak = errors.New("password does not meet requirements")
)

// Validation constants
const (
	MoneyScale         = 2
	MaxOperationAmount = "1000000000" // 1 billion
	MaxNameLength      = 255
	MaxPhoneLength     = 50
	MaxAddressLength   = 255
	MinPasswordLength  = 8
	MaxPasswordLength  = 72 // bcrypt input limit
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var maxAmount = decimal.RequireFromString(MaxOperationAmount)

// ValidateAmount validates a deposit or transfer amount: strictly positive,
// at most cent precision, below the per-operation ceiling.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}

	if !amount.Equal(amount.Truncate(MoneyScale)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, amount, MoneyScale)
	}

	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxOperationAmount)
	}

	return nil
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail validates email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(NormalizeEmail(email)) {
		return ErrInvalidEmail
	}

	return nil
}

// ValidatePassword validates password length. Strength rules beyond length
// belong to the authentication layer.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooWeak, MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrPasswordTooWeak, MaxPasswordLength)
	}

	return nil
}

// ValidateProfileUpdate checks the fields present in an update.
func ValidateProfileUpdate(u ProfileUpdate) error {
	if u.Email != nil {
		if err := ValidateEmail(*u.Email); err != nil {
			return err
		}
	}

	if u.FullName != nil {
		name := strings.TrimSpace(*u.FullName)
		if name == "" {
			return fmt.Errorf("%w: full name cannot be empty", ErrInvalidProfile)
		}
		if len(name) > MaxNameLength {
			return fmt.Errorf("%w: full name exceeds %d characters", ErrInvalidProfile, MaxNameLength)
		}
	}

	if u.Phone != nil && len(*u.Phone) > MaxPhoneLength {
		return fmt.Errorf("%w: phone exceeds %d characters", ErrInvalidProfile, MaxPhoneLength)
	}

	if u.Address != nil && len(*u.Address) > MaxAddressLength {
		return fmt.Errorf("%w: address exceeds %d characters", ErrInvalidProfile, MaxAddressLength)
	}

	if u.ChangesPassword() {
		if err := ValidatePassword(*u.Password); err != nil {
			return err
		}
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	// Offsets are passed to storage as int32.
	if offset > math.MaxInt32 {
		offset = math.MaxInt32
	}

	return limit, offset
}
