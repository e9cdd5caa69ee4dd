package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/domain"
)

// ReconciliationUseCase verifies balances against the transaction log.
type ReconciliationUseCase struct {
	repo  ReconciliationRepository
	clock Clock
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(repo ReconciliationRepository, clock Clock) *ReconciliationUseCase {
	if clock == nil {
		clock = NewMonotonicClock()
	}

	return &ReconciliationUseCase{
		repo:  repo,
		clock: clock,
	}
}

// ReconciliationReport is the result of a reconciliation run.
type ReconciliationReport struct {
	TotalBalance  decimal.Decimal
	TotalOpening  decimal.Decimal
	TotalDeposits decimal.Decimal
	ExpectedTotal decimal.Decimal
	Discrepancies []AccountDiscrepancy
	IsReconciled  bool
	CheckedAt     time.Time
}

// Reconcile checks that money is conserved: the sum of balances equals the
// sum of opening balances plus all deposits, and every account balance equals
// its opening balance plus credits minus debits.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context) (*ReconciliationReport, error) {
	balances, openings, deposits, err := uc.repo.Totals(ctx)
	if err != nil {
		return nil, normalizeError(err)
	}

	discrepancies, err := uc.repo.AccountDiscrepancies(ctx)
	if err != nil {
		return nil, normalizeError(err)
	}

	expected := openings.Add(deposits)

	return &ReconciliationReport{
		TotalBalance:  balances,
		TotalOpening:  openings,
		TotalDeposits: deposits,
		ExpectedTotal: expected,
		Discrepancies: discrepancies,
		IsReconciled:  balances.Equal(expected) && len(discrepancies) == 0,
		CheckedAt:     uc.clock.Now(),
	}, nil
}

// Check returns domain.ErrInconsistentLedger when reconciliation fails.
func (uc *ReconciliationUseCase) Check(ctx context.Context) error {
	report, err := uc.Reconcile(ctx)
	if err != nil {
		return err
	}
	if !report.IsReconciled {
		return domain.ErrInconsistentLedger
	}
	return nil
}
