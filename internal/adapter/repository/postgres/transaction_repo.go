package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/simplebank/internal/domain"
	"github.com/iho/simplebank/internal/infrastructure/postgres/generated"
	"github.com/iho/simplebank/internal/usecase"
)

// TransactionRepository implements usecase.LedgerRepository on the
// append-only transactions table.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepositoryWithDB(pool)
}

func newTransactionRepositoryWithDB(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// Append inserts a record inside tx.
func (r *TransactionRepository) Append(ctx context.Context, tx usecase.Transaction, record *domain.Transaction) (string, error) {
	ptx, err := pgxTx(tx)
	if err != nil {
		return "", err
	}

	err = r.queries.WithTx(ptx).CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:         record.ID,
		Type:       string(record.Type),
		SenderID:   record.SenderID,
		ReceiverID: record.ReceiverID,
		Amount:     decimalToNumeric(record.Amount),
		Date:       timeToPgTimestamptz(record.CreatedAt),
	})
	if err != nil {
		return "", translateError(err)
	}

	return record.ID, nil
}

// ListForAccount returns records involving the account, newest first, with
// both parties' current emails.
func (r *TransactionRepository) ListForAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactionsForUser(ctx, generated.ListTransactionsForUserParams{
		UserID: accountID,
		Limit:  clampInt32(limit),
		Offset: clampInt32(offset),
	})
	if err != nil {
		return nil, translateError(err)
	}

	records := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		records = append(records, &domain.Transaction{
			ID:            row.ID,
			Type:          domain.TransactionType(row.Type),
			SenderID:      row.SenderID,
			ReceiverID:    row.ReceiverID,
			Amount:        numericToDecimal(row.Amount),
			CreatedAt:     row.Date.Time,
			SenderEmail:   row.SenderEmail,
			ReceiverEmail: row.ReceiverEmail,
		})
	}

	return records, nil
}
