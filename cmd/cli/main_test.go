package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/simplebank/internal/adapter/http/dto"
	"github.com/iho/simplebank/internal/adapter/repository/memory"
	"github.com/iho/simplebank/internal/domain"
	"github.com/iho/simplebank/internal/usecase"
)

func runCLI(t *testing.T, server *httptest.Server, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--url", server.URL, "--token", "test-token"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, struct {
		A int `json:"a"`
	}{A: 1}))

	expected := "{\n  \"a\": 1\n}\n"
	if buf.String() != expected {
		t.Fatalf("unexpected json output:\n%s", buf.String())
	}
}

func TestLoginCmdPrintsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		var req dto.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Email)
		_ = json.NewEncoder(w).Encode(dto.LoginResponse{Token: "jwt-token"})
	}))
	defer server.Close()

	out, err := runCLI(t, server, "login", "--email", "alice@example.com", "--password", "Password@123")

	require.NoError(t, err)
	assert.Equal(t, "jwt-token", strings.TrimSpace(out))
}

func TestTransferCmdSendsBearerAndIdempotencyKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/me/transfers", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "k-1", r.Header.Get("Idempotency-Key"))

		var req dto.TransferRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "bob@example.com", req.Receiver)
		assert.True(t, req.Amount.Equal(decimal.NewFromInt(30)))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(dto.OperationResponse{
			Transaction: &dto.TransactionResponse{ID: "tx-1", Type: "transfer", Direction: "debit", Amount: "30.00"},
			Balance:     "70.00",
		})
	}))
	defer server.Close()

	out, err := runCLI(t, server, "transfer", "bob@example.com", "30", "--idempotency-key", "k-1")

	require.NoError(t, err)
	assert.Contains(t, out, "transfer debit 30.00 (tx-1)")
	assert.Contains(t, out, "balance 70.00")
}

func TestDepositCmdRejectsBadAmount(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := runCLI(t, server, "deposit", "ten")

	assert.ErrorContains(t, err, "invalid amount")
}

func TestCmdSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "deposit failed", Message: "insufficient funds"})
	}))
	defer server.Close()

	_, err := runCLI(t, server, "deposit", "10")

	var apiErr *apiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "deposit failed: insufficient funds", apiErr.Message)
}

func TestHistoryCmd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(dto.TransactionListResponse{
			Transactions: []*dto.TransactionResponse{{
				ID:           "01HZXTESTTRANSACTIONID",
				Type:         "transfer",
				Direction:    "credit",
				Amount:       "5.00",
				Counterparty: "bob@example.com",
				Date:         time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			}},
		})
	}))
	defer server.Close()

	out, err := runCLI(t, server, "history", "--limit", "5")

	require.NoError(t, err)
	assert.Contains(t, out, "2026-01-02 03:04:05")
	assert.Contains(t, out, "bob@example.com")
	assert.Contains(t, out, "01HZXTEST...")
}

func TestReconcileCmd(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"passed", http.StatusOK, false},
		{"discrepancy", http.StatusConflict, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(dto.ReconciliationResponse{
					TotalBalance:  "100.00",
					ExpectedTotal: "100.00",
					IsReconciled:  tt.status == http.StatusOK,
				})
			}))
			defer server.Close()

			out, err := runCLI(t, server, "reconcile")
			if tt.wantErr {
				assert.ErrorContains(t, err, "reconciliation FAILED")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "Reconciliation PASSED")
		})
	}
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type sequenceIDs struct{ n int }

func (s *sequenceIDs) Generate() string {
	s.n++
	return "acc-" + string(rune('0'+s.n))
}

func TestSeedAccountsIsRerunnable(t *testing.T) {
	store := memory.NewStore()
	repo := memory.NewAccountRepository(store)
	accountUC := usecase.NewAccountUseCase(repo, plainHasher{}, &sequenceIDs{}, nil, decimal.Zero)

	var out bytes.Buffer
	require.NoError(t, seedAccounts(context.Background(), accountUC, &out))
	require.NoError(t, seedAccounts(context.Background(), accountUC, &out))

	assert.Equal(t, len(demoAccounts), store.AccountCount())
	assert.Contains(t, out.String(), "alice@example.com / Password@123 (5000.75)")
	assert.Contains(t, out.String(), "eve@example.com already exists, skipped")

	alice, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.True(t, alice.Balance.Equal(decimal.RequireFromString("5000.75")))
	assert.True(t, alice.OpeningBalance.Equal(alice.Balance))
}
