package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "simplebank-cli",
		Short:         "SimpleBank CLI tool",
		Long:          `A command line interface for the SimpleBank API and database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", envOr("SIMPLEBANK_URL", "http://localhost:8080"), "Base URL of the SimpleBank API")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("SIMPLEBANK_TOKEN"), "Bearer token from `login`")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		registerCmd(),
		loginCmd(),
		meCmd(),
		depositCmd(),
		transferCmd(),
		historyCmd(),
		reconcileCmd(),
		migrateCmd(),
		seedCmd(),
	)

	return rootCmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
