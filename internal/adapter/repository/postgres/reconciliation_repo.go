package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/infrastructure/postgres/generated"
	"github.com/iho/simplebank/internal/usecase"
)

// ReconciliationRepository implements usecase.ReconciliationRepository.
type ReconciliationRepository struct {
	queries *generated.Queries
}

// NewReconciliationRepository creates a new ReconciliationRepository.
func NewReconciliationRepository(pool *pgxpool.Pool) *ReconciliationRepository {
	return newReconciliationRepositoryWithDB(pool)
}

func newReconciliationRepositoryWithDB(db generated.DBTX) *ReconciliationRepository {
	return &ReconciliationRepository{queries: generated.New(db)}
}

// Totals returns Σbalance, Σopening balance and Σdeposits.
func (r *ReconciliationRepository) Totals(ctx context.Context) (balances, openings, deposits decimal.Decimal, err error) {
	row, err := r.queries.GetLedgerTotals(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, translateError(err)
	}

	return numericToDecimal(row.TotalBalance), numericToDecimal(row.TotalOpening), numericToDecimal(row.TotalDeposits), nil
}

// AccountDiscrepancies returns accounts whose balance differs from
// opening + credits - debits.
func (r *ReconciliationRepository) AccountDiscrepancies(ctx context.Context) ([]usecase.AccountDiscrepancy, error) {
	rows, err := r.queries.ListAccountDiscrepancies(ctx)
	if err != nil {
		return nil, translateError(err)
	}

	out := make([]usecase.AccountDiscrepancy, 0, len(rows))
	for _, row := range rows {
		out = append(out, usecase.AccountDiscrepancy{
			AccountID:         row.ID,
			RecordedBalance:   numericToDecimal(row.Balance),
			CalculatedBalance: numericToDecimal(row.CalculatedBalance),
		})
	}

	return out, nil
}
