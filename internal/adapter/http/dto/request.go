package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/domain"
	"github.com/iho/simplebank/internal/usecase"
)

// RegisterRequest represents a request to open an account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Email:    r.Email,
		Password: r.Password,
		FullName: r.FullName,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *LoginRequest) ToUseCaseInput() usecase.AuthenticateInput {
	return usecase.AuthenticateInput{
		Email:    r.Email,
		Password: r.Password,
	}
}

// DepositRequest represents a deposit into the caller's account.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput(accountID string) usecase.DepositInput {
	return usecase.DepositInput{
		AccountID: accountID,
		Amount:    r.Amount,
	}
}

// TransferRequest represents a transfer from the caller's account.
// Receiver is an email address or an account ID.
type TransferRequest struct {
	Receiver string          `json:"receiver"`
	Amount   decimal.Decimal `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput(senderID string) usecase.TransferInput {
	return usecase.TransferInput{
		SenderID: senderID,
		Receiver: r.Receiver,
		Amount:   r.Amount,
	}
}

// UpdateProfileRequest represents a partial profile update. Omitted
// fields are left unchanged.
type UpdateProfileRequest struct {
	Email    *string `json:"email,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ToDomain converts to a domain profile update.
func (r *UpdateProfileRequest) ToDomain() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		Email:    r.Email,
		FullName: r.FullName,
		Phone:    r.Phone,
		Address:  r.Address,
		Password: r.Password,
	}
}
