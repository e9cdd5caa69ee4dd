package postgres

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/domain"
)

func TestTransactionRepositoryAppend(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginTx(t, mockPool)

	mockPool.ExpectExec("CreateTransaction").
		WithArgs("tx-1", "transfer", "acc-1", "acc-2", pgxmock.AnyArg(), timeToPgTimestamptz(repoTestTime)).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := newTransactionRepositoryWithDB(mockPool)
	id, err := repo.Append(context.Background(), tx, &domain.Transaction{
		ID:         "tx-1",
		Type:       domain.TransactionTypeTransfer,
		SenderID:   "acc-1",
		ReceiverID: "acc-2",
		Amount:     decimal.NewFromInt(30),
		CreatedAt:  repoTestTime,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != "tx-1" {
		t.Fatalf("unexpected id %q", id)
	}

	assertExpectations(t, mockPool)
}

func TestTransactionRepositoryAppendError(t *testing.T) {
	mockPool := newMockPool(t)
	tx := beginTx(t, mockPool)

	driverErr := &pgconn.PgError{Code: "08006", Message: "connection failure"}
	mockPool.ExpectExec("CreateTransaction").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(driverErr)

	repo := newTransactionRepositoryWithDB(mockPool)
	_, err := repo.Append(context.Background(), tx, &domain.Transaction{
		ID:         "tx-1",
		Type:       domain.TransactionTypeDeposit,
		SenderID:   "acc-1",
		ReceiverID: "acc-1",
		Amount:     decimal.RequireFromString("25.50"),
		CreatedAt:  repoTestTime,
	})
	if !errors.Is(err, driverErr) {
		t.Fatalf("expected driver error, got %v", err)
	}
}

func TestTransactionRepositoryListForAccount(t *testing.T) {
	mockPool := newMockPool(t)

	ts := timeToPgTimestamptz(repoTestTime)
	rows := pgxmock.NewRows([]string{"id", "type", "sender_id", "receiver_id", "amount", "date", "sender_email", "receiver_email"}).
		AddRow("tx-2", "transfer", "acc-1", "acc-2", numeric("30"), ts, "alice@example.com", "bob@example.com").
		AddRow("tx-1", "deposit", "acc-1", "acc-1", numeric("25.50"), ts, "alice@example.com", "alice@example.com")
	mockPool.ExpectQuery("ListTransactionsForUser").WithArgs("acc-1", int32(10), int32(0)).WillReturnRows(rows)

	repo := newTransactionRepositoryWithDB(mockPool)
	records, err := repo.ListForAccount(context.Background(), "acc-1", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Type != domain.TransactionTypeTransfer || records[0].Counterparty("acc-1") != "bob@example.com" {
		t.Fatalf("unexpected first record: %+v", records[0])
	}
	if !records[1].Amount.Equal(decimal.RequireFromString("25.50")) {
		t.Fatalf("unexpected amount %s", records[1].Amount)
	}

	assertExpectations(t, mockPool)
}

func TestTransactionRepositoryListForAccountClampsOffset(t *testing.T) {
	mockPool := newMockPool(t)

	rows := pgxmock.NewRows([]string{"id", "type", "sender_id", "receiver_id", "amount", "date", "sender_email", "receiver_email"})
	mockPool.ExpectQuery("ListTransactionsForUser").
		WithArgs("acc-1", int32(50), int32(math.MaxInt32)).
		WillReturnRows(rows)

	repo := newTransactionRepositoryWithDB(mockPool)
	records, err := repo.ListForAccount(context.Background(), "acc-1", 50, 4294967295)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}

	assertExpectations(t, mockPool)
}
