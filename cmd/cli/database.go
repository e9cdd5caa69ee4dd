package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	postgresRepo "github.com/iho/simplebank/internal/adapter/repository/postgres"
	"github.com/iho/simplebank/internal/domain"
	"github.com/iho/simplebank/internal/infrastructure/auth"
	"github.com/iho/simplebank/internal/infrastructure/config"
	"github.com/iho/simplebank/internal/infrastructure/logger"
	"github.com/iho/simplebank/internal/infrastructure/postgres"
	"github.com/iho/simplebank/internal/usecase"
)

// demoPassword is shared by all seeded accounts.
const demoPassword = "Password@123"

type demoAccount struct {
	email   string
	name    string
	balance string
}

var demoAccounts = []demoAccount{
	{email: "alice@example.com", name: "Alice", balance: "5000.75"},
	{email: "bob@example.com", name: "Bob", balance: "3250.50"},
	{email: "charlie@example.com", name: "Charlie", balance: "870.00"},
	{email: "diana@example.com", name: "Diana", balance: "10900.00"},
	{email: "eve@example.com", name: "Eve", balance: "150.25"},
}

func cliLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	logCfg := logger.FromConfig(cfg, "cli")
	logCfg.Format = logger.FormatConsole
	logCfg.Output = w
	return logger.New(logCfg)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, cliLogger(cfg, cmd.ErrOrStderr()))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath, cliLogger(cfg, cmd.ErrOrStderr()))
		},
	})

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo accounts in the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.DatabaseTimeout)
			defer cancel()

			pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, 2, 1)
			if err != nil {
				return err
			}
			defer pool.Close()

			accountUC := usecase.NewAccountUseCase(
				postgresRepo.NewAccountRepository(pool),
				auth.NewBcryptHasher(0),
				postgresRepo.NewULIDGenerator(),
				nil,
				decimal.Zero,
			)

			return seedAccounts(ctx, accountUC, cmd.OutOrStdout())
		},
	}
}

// accountRegistrar registers accounts.
type accountRegistrar interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.Account, error)
}

// seedAccounts registers the demo accounts. Existing emails are skipped so
// the command can be rerun.
func seedAccounts(ctx context.Context, accounts accountRegistrar, out io.Writer) error {
	for _, demo := range demoAccounts {
		balance := decimal.RequireFromString(demo.balance)

		_, err := accounts.Register(ctx, usecase.RegisterInput{
			Email:          demo.email,
			Password:       demoPassword,
			FullName:       demo.name,
			OpeningBalance: &balance,
		})
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			fmt.Fprintf(out, "- %s already exists, skipped\n", demo.email)
			continue
		case err != nil:
			return fmt.Errorf("seed %s: %w", demo.email, err)
		}

		fmt.Fprintf(out, "- %s / %s (%s)\n", demo.email, demoPassword, balance.StringFixed(domain.MoneyScale))
	}

	fmt.Fprintln(out, "Seed complete.")
	return nil
}
