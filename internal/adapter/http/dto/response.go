package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/domain"
	"github.com/iho/simplebank/internal/usecase"
)

// Money renders an amount with exactly two decimal places.
func Money(d decimal.Decimal) string {
	return d.StringFixed(domain.MoneyScale)
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	AccountNumber string    `json:"account_number,omitempty"`
	Balance       string    `json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:            a.ID,
		Email:         a.Email,
		FullName:      a.FullName,
		Phone:         a.Phone,
		Address:       a.Address,
		AccountNumber: a.AccountNumber,
		Balance:       Money(a.Balance),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// LoginResponse represents a login response.
type LoginResponse struct {
	Token     string           `json:"token"`
	ExpiresIn int64            `json:"expires_in"`
	Account   *AccountResponse `json:"account"`
}

// TransactionResponse is a ledger record as seen by one of its parties.
type TransactionResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Direction     string    `json:"direction"`
	Amount        string    `json:"amount"`
	Counterparty  string    `json:"counterparty,omitempty"`
	SenderEmail   string    `json:"sender_email"`
	ReceiverEmail string    `json:"receiver_email"`
	Date          time.Time `json:"date"`
}

// TransactionFromDomain converts a record to a response from the point of
// view of accountID.
func TransactionFromDomain(t *domain.Transaction, accountID string) *TransactionResponse {
	return &TransactionResponse{
		ID:            t.ID,
		Type:          string(t.Type),
		Direction:     string(t.Direction(accountID)),
		Amount:        Money(t.Amount),
		Counterparty:  t.Counterparty(accountID),
		SenderEmail:   t.SenderEmail,
		ReceiverEmail: t.ReceiverEmail,
		Date:          t.CreatedAt,
	}
}

// TransactionListResponse is a page of an account's history.
type TransactionListResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Limit        int                    `json:"limit"`
	Offset       int                    `json:"offset"`
}

// TransactionsFromDomain converts records to a page response.
func TransactionsFromDomain(records []*domain.Transaction, accountID string, limit, offset int) *TransactionListResponse {
	result := make([]*TransactionResponse, len(records))
	for i, t := range records {
		result[i] = TransactionFromDomain(t, accountID)
	}
	return &TransactionListResponse{Transactions: result, Limit: limit, Offset: offset}
}

// OperationResponse is returned by deposit and transfer.
type OperationResponse struct {
	Transaction *TransactionResponse `json:"transaction"`
	Balance     string               `json:"balance"`
}

// OperationFromResult converts an engine result for the acting account.
func OperationFromResult(result *usecase.OperationResult, accountID string) *OperationResponse {
	return &OperationResponse{
		Transaction: TransactionFromDomain(result.Transaction, accountID),
		Balance:     Money(result.Balance),
	}
}

// DiscrepancyResponse is an account whose balance disagrees with the ledger.
type DiscrepancyResponse struct {
	AccountID         string `json:"account_id"`
	RecordedBalance   string `json:"recorded_balance"`
	CalculatedBalance string `json:"calculated_balance"`
}

// ReconciliationResponse represents a reconciliation report.
type ReconciliationResponse struct {
	TotalBalance  string                 `json:"total_balance"`
	TotalOpening  string                 `json:"total_opening"`
	TotalDeposits string                 `json:"total_deposits"`
	ExpectedTotal string                 `json:"expected_total"`
	IsReconciled  bool                   `json:"is_reconciled"`
	Discrepancies []*DiscrepancyResponse `json:"discrepancies"`
	CheckedAt     time.Time              `json:"checked_at"`
}

// ReconciliationFromReport converts a reconciliation report to response.
func ReconciliationFromReport(r *usecase.ReconciliationReport) *ReconciliationResponse {
	discrepancies := make([]*DiscrepancyResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = &DiscrepancyResponse{
			AccountID:         d.AccountID,
			RecordedBalance:   Money(d.RecordedBalance),
			CalculatedBalance: Money(d.CalculatedBalance),
		}
	}

	return &ReconciliationResponse{
		TotalBalance:  Money(r.TotalBalance),
		TotalOpening:  Money(r.TotalOpening),
		TotalDeposits: Money(r.TotalDeposits),
		ExpectedTotal: Money(r.ExpectedTotal),
		IsReconciled:  r.IsReconciled,
		Discrepancies: discrepancies,
		CheckedAt:     r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
