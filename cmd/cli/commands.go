package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/simplebank/internal/adapter/http/dto"
	"github.com/iho/simplebank/internal/adapter/http/middleware"
)

func client() *apiClient {
	return newAPIClient(baseURL, token, timeout)
}

func registerCmd() *cobra.Command {
	var req dto.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Open a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			var account dto.AccountResponse
			if err := client().do(cmd.Context(), http.MethodPost, "/api/v1/accounts", req, &account, nil); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), account)
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&req.FullName, "name", "", "Full name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func loginCmd() *cobra.Command {
	var req dto.LoginRequest

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp dto.LoginResponse
			if err := client().do(cmd.Context(), http.MethodPost, "/api/v1/auth/login", req, &resp, nil); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), resp.Token)
			return err
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func meCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "balance",
		Aliases: []string{"me"},
		Short:   "Show your account and balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			var account dto.AccountResponse
			if err := client().do(cmd.Context(), http.MethodGet, "/api/v1/me", nil, &account, nil); err != nil {
				return err
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  balance %s\n", account.AccountNumber, account.Email, account.Balance)
			return err
		},
	}
}

func depositCmd() *cobra.Command {
	var idempotencyKey string

	cmd := &cobra.Command{
		Use:   "deposit AMOUNT",
		Short: "Deposit money into your account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[0])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}

			var resp dto.OperationResponse
			err = client().do(cmd.Context(), http.MethodPost, "/api/v1/me/deposits",
				dto.DepositRequest{Amount: amount}, &resp, idempotencyHeaders(idempotencyKey))
			if err != nil {
				return err
			}
			return printOperation(cmd.OutOrStdout(), &resp)
		},
	}

	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Replay-safe request key")
	return cmd
}

func transferCmd() *cobra.Command {
	var idempotencyKey string

	cmd := &cobra.Command{
		Use:   "transfer RECEIVER AMOUNT",
		Short: "Transfer money to another account by email or ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			var resp dto.OperationResponse
			err = client().do(cmd.Context(), http.MethodPost, "/api/v1/me/transfers",
				dto.TransferRequest{Receiver: args[0], Amount: amount}, &resp, idempotencyHeaders(idempotencyKey))
			if err != nil {
				return err
			}
			return printOperation(cmd.OutOrStdout(), &resp)
		},
	}

	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Replay-safe request key")
	return cmd
}

func historyCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List your transactions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/me/transactions?limit=" + strconv.Itoa(limit) + "&offset=" + strconv.Itoa(offset)

			var resp dto.TransactionListResponse
			if err := client().do(cmd.Context(), http.MethodGet, path, nil, &resp, nil); err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tTYPE\tDIRECTION\tAMOUNT\tCOUNTERPARTY\tID")
			for _, t := range resp.Transactions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					t.Date.Format("2006-01-02 15:04:05"), t.Type, t.Direction, t.Amount, t.Counterparty, truncate(t.ID, 12))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	return cmd
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Check that balances agree with the ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			var report dto.ReconciliationResponse
			err := client().do(cmd.Context(), http.MethodGet, "/api/v1/ledger/reconciliation", nil, &report, nil)

			// A discrepancy is reported with 409 and the report as body.
			var apiErr *apiError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
				return fmt.Errorf("reconciliation FAILED: %s", apiErr.Message)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Reconciliation PASSED\n")
			fmt.Fprintf(out, "Total balance:  %s\n", report.TotalBalance)
			fmt.Fprintf(out, "Expected total: %s\n", report.ExpectedTotal)
			return nil
		},
	}
}

func idempotencyHeaders(key string) map[string]string {
	if key == "" {
		return nil
	}
	return map[string]string{middleware.IdempotencyKeyHeader: key}
}

func printOperation(w io.Writer, resp *dto.OperationResponse) error {
	_, err := fmt.Fprintf(w, "%s %s %s (%s)\nbalance %s\n",
		resp.Transaction.Type, resp.Transaction.Direction, resp.Transaction.Amount, resp.Transaction.ID, resp.Balance)
	return err
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
