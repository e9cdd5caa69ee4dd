package domain

import (
	"time"
)

// AuditEvent is the payload emitted to the external audit sink after a
// deposit or transfer commits.
type AuditEvent struct {
	User      string          `json:"user"`
	Type      TransactionType `json:"type"`
	Amount    float64         `json:"amount"`
	Timestamp string          `json:"timestamp"`
}

// NewAuditEvent builds the audit payload for a committed transaction on
// behalf of the acting user.
func NewAuditEvent(user string, tx *Transaction) AuditEvent {
	return AuditEvent{
		User:      user,
		Type:      tx.Type,
		Amount:    tx.Amount.InexactFloat64(),
		Timestamp: tx.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
