package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/simplebank/internal/domain"
)

// PostgreSQL error codes the adapter reacts to.
const (
	pgErrUniqueViolation      = "23505"
	pgErrCheckViolation       = "23514"
	pgErrSerializationFailure = "40001"
	pgErrDeadlock             = "40P01"
	pgErrLockNotAvailable     = "55P03"
	pgErrQueryCanceled        = "57014"
)

// Constraint names from the schema migrations.
const (
	constraintEmailKey     = "users_email_key"
	constraintBalanceCheck = "users_balance_check"
)

// translateError maps driver errors onto the domain taxonomy. Transient
// errors keep the driver error in the chain so the Retrier can inspect it.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrUniqueViolation:
			if pgErr.ConstraintName == constraintEmailKey {
				return domain.ErrEmailTaken
			}
			// Account number collisions resolve on the next attempt.
			return fmt.Errorf("%w: %w", domain.ErrTransientStorage, err)
		case pgErrCheckViolation:
			if pgErr.ConstraintName == constraintBalanceCheck {
				return domain.ErrInsufficientFunds
			}
		case pgErrSerializationFailure, pgErrDeadlock, pgErrLockNotAvailable, pgErrQueryCanceled:
			return fmt.Errorf("%w: %w", domain.ErrTransientStorage, err)
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", domain.ErrTransientStorage, err)
	}

	return err
}
