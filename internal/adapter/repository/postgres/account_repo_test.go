package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/domain"
)

var userColumns = []string{
	"id", "email", "balance", "opening_balance", "password_hash", "full_name",
	"phone", "address", "account_number", "version", "created_at", "updated_at",
}

var repoTestTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func numeric(s string) pgtype.Numeric {
	return decimalToNumeric(decimal.RequireFromString(s))
}

func userRow(rows *pgxmock.Rows, id, email, balance string) *pgxmock.Rows {
	ts := timeToPgTimestamptz(repoTestTime)
	return rows.AddRow(id, email, numeric(balance), numeric("0"), "hash", "", "", "", "", int64(0), ts, ts)
}

func beginTx(t *testing.T, mockPool pgxmock.PgxPoolIface) *Tx {
	t.Helper()
	mockPool.ExpectBegin()

	tx, err := newTxManagerWithPool(mockPool).Begin(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return tx.(*Tx)
}

func TestAccountRepositoryCreate(t *testing.T) {
	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "success"},
		{
			name:    "duplicate email",
			execErr: &pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: constraintEmailKey},
			wantErr: domain.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPool := newMockPool(t)
			exec := mockPool.ExpectExec("CreateUser").
				WithArgs("acc-1", "alice@example.com", pgxmock.AnyArg(), pgxmock.AnyArg(), "hash", "Alice", "", "", "", int64(0), pgxmock.AnyArg(), pgxmock.AnyArg())
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
			} else {
				exec.WillReturnResult(pgxmock.NewResult("INSERT", 1))
			}

			repo := newAccountRepositoryWithDB(mockPool)
			err := repo.Create(context.Background(), &domain.Account{
				ID:             "acc-1",
				Email:          "alice@example.com",
				Balance:        decimal.NewFromInt(100),
				OpeningBalance: decimal.NewFromInt(100),
				CredentialHash: "hash",
				FullName:       "Alice",
				CreatedAt:      repoTestTime,
				UpdatedAt:      repoTestTime,
			})

			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			assertExpectations(t, mockPool)
		})
	}
}

func TestAccountRepositoryGetByID(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery("GetUserByID").WithArgs("acc-1").
		WillReturnRows(userRow(pgxmock.NewRows(userColumns), "acc-1", "alice@example.com", "70.50"))
	mockPool.ExpectQuery("GetUserByID").WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(userColumns))

	repo := newAccountRepositoryWithDB(mockPool)

	account, err := repo.GetByID(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !account.Balance.Equal(decimal.RequireFromString("70.50")) {
		t.Fatalf("expected balance 70.50, got %s", account.Balance)
	}
	if account.Email != "alice@example.com" || !account.CreatedAt.Equal(repoTestTime) {
		t.Fatalf("unexpected account: %+v", account)
	}

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryGetByEmailNormalizes(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery("GetUserByEmail").WithArgs("alice@example.com").
		WillReturnRows(userRow(pgxmock.NewRows(userColumns), "acc-1", "alice@example.com", "1"))

	repo := newAccountRepositoryWithDB(mockPool)
	if _, err := repo.GetByEmail(context.Background(), " Alice@Example.COM "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryGetByIDsForUpdate(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginTx(t, mockPool)

	rows := pgxmock.NewRows(userColumns)
	userRow(rows, "acc-1", "alice@example.com", "100")
	userRow(rows, "acc-2", "bob@example.com", "50")
	mockPool.ExpectQuery("GetUsersByIDsForUpdate").WithArgs([]string{"acc-1", "acc-2"}).WillReturnRows(rows)

	repo := newAccountRepositoryWithDB(mockPool)
	accounts, err := repo.GetByIDsForUpdate(context.Background(), tx, []string{"acc-1", "acc-2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 || accounts[0].ID != "acc-1" || accounts[1].ID != "acc-2" {
		t.Fatalf("unexpected accounts: %+v", accounts)
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryGetByIDsForUpdateLockTimeout(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginTx(t, mockPool)

	mockPool.ExpectQuery("GetUsersByIDsForUpdate").WithArgs(pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: pgErrLockNotAvailable})

	repo := newAccountRepositoryWithDB(mockPool)
	_, err := repo.GetByIDsForUpdate(context.Background(), tx, []string{"acc-1"})
	if !errors.Is(err, domain.ErrTransientStorage) {
		t.Fatalf("expected ErrTransientStorage, got %v", err)
	}
}

func TestAccountRepositoryApplyDelta(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(mockPool pgxmock.PgxPoolIface)
		wantBalance string
		wantErr     error
	}{
		{
			name: "applied",
			setup: func(mockPool pgxmock.PgxPoolIface) {
				mockPool.ExpectQuery("ApplyBalanceDelta").WithArgs(pgxmock.AnyArg(), "acc-1").
					WillReturnRows(pgxmock.NewRows([]string{"balance"}).AddRow(numeric("70.00")))
			},
			wantBalance: "70",
		},
		{
			name: "insufficient funds",
			setup: func(mockPool pgxmock.PgxPoolIface) {
				mockPool.ExpectQuery("ApplyBalanceDelta").WithArgs(pgxmock.AnyArg(), "acc-1").
					WillReturnRows(pgxmock.NewRows([]string{"balance"}))
				mockPool.ExpectQuery("UserExists").WithArgs("acc-1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
			},
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name: "missing account",
			setup: func(mockPool pgxmock.PgxPoolIface) {
				mockPool.ExpectQuery("ApplyBalanceDelta").WithArgs(pgxmock.AnyArg(), "acc-1").
					WillReturnRows(pgxmock.NewRows([]string{"balance"}))
				mockPool.ExpectQuery("UserExists").WithArgs("acc-1").
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
			wantErr: domain.ErrAccountNotFound,
		},
		{
			name: "check constraint",
			setup: func(mockPool pgxmock.PgxPoolIface) {
				mockPool.ExpectQuery("ApplyBalanceDelta").WithArgs(pgxmock.AnyArg(), "acc-1").
					WillReturnError(&pgconn.PgError{Code: pgErrCheckViolation, ConstraintName: constraintBalanceCheck})
			},
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name: "deadlock",
			setup: func(mockPool pgxmock.PgxPoolIface) {
				mockPool.ExpectQuery("ApplyBalanceDelta").WithArgs(pgxmock.AnyArg(), "acc-1").
					WillReturnError(&pgconn.PgError{Code: pgErrDeadlock})
			},
			wantErr: domain.ErrTransientStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPool := newMockPool(t)
			tx := beginTx(t, mockPool)
			tt.setup(mockPool)

			repo := newAccountRepositoryWithDB(mockPool)
			balance, err := repo.ApplyDelta(context.Background(), tx, "acc-1", decimal.NewFromInt(-30))

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if !balance.Equal(decimal.RequireFromString(tt.wantBalance)) {
					t.Fatalf("expected balance %s, got %s", tt.wantBalance, balance)
				}
			}

			assertExpectations(t, mockPool)
		})
	}
}

func TestAccountRepositoryRejectsForeignTransaction(t *testing.T) {
	repo := newAccountRepositoryWithDB(newMockPool(t))

	if _, err := repo.ApplyDelta(context.Background(), nil, "acc-1", decimal.NewFromInt(1)); !errors.Is(err, errForeignTransaction) {
		t.Fatalf("expected errForeignTransaction, got %v", err)
	}
}

func TestAccountRepositoryUpdateProfile(t *testing.T) {
	mockPool := newMockPool(t)
	email := "new@example.com"

	mockPool.ExpectQuery("UpdateUserProfile").
		WithArgs(pgtype.Text{String: email, Valid: true}, pgtype.Text{}, pgtype.Text{}, pgtype.Text{}, pgxmock.AnyArg(), "acc-1").
		WillReturnRows(userRow(pgxmock.NewRows(userColumns), "acc-1", email, "0"))
	mockPool.ExpectQuery("UpdateUserProfile").WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "acc-1").
		WillReturnError(&pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: constraintEmailKey})
	mockPool.ExpectQuery("UpdateUserProfile").WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "missing").
		WillReturnRows(pgxmock.NewRows(userColumns))

	repo := newAccountRepositoryWithDB(mockPool)

	account, err := repo.UpdateProfile(context.Background(), "acc-1", domain.ProfileUpdate{Email: &email}, repoTestTime)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Email != email {
		t.Fatalf("unexpected email %q", account.Email)
	}

	if _, err := repo.UpdateProfile(context.Background(), "acc-1", domain.ProfileUpdate{Email: &email}, repoTestTime); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := repo.UpdateProfile(context.Background(), "missing", domain.ProfileUpdate{Email: &email}, repoTestTime); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryUpdatePassword(t *testing.T) {
	mockPool := newMockPool(t)

	mockPool.ExpectExec("UpdateUserPassword").
		WithArgs("new-hash", timeToPgTimestamptz(repoTestTime), "acc-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectExec("UpdateUserPassword").
		WithArgs("new-hash", pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := newAccountRepositoryWithDB(mockPool)

	if err := repo.UpdatePassword(context.Background(), "acc-1", "new-hash", repoTestTime); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.UpdatePassword(context.Background(), "missing", "new-hash", repoTestTime); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}

	assertExpectations(t, mockPool)
}

func TestAccountRepositoryAssignAccountNumber(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectQuery("AssignAccountNumber").WithArgs("ACCT123456", "acc-1").
		WillReturnRows(pgxmock.NewRows([]string{"account_number"}).AddRow("ACCT000001"))

	repo := newAccountRepositoryWithDB(mockPool)
	number, err := repo.AssignAccountNumber(context.Background(), "acc-1", "ACCT123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if number != "ACCT000001" {
		t.Fatalf("expected existing number to be kept, got %q", number)
	}

	assertExpectations(t, mockPool)
}
