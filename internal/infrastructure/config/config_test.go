package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/iho/simplebank/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "STORAGE_DRIVER", "AUDIT_SINK", "DATABASE_LOCK_TIMEOUT", "TRANSACTION_TIMEOUT", "HTTP_PORT", "REDIS_POOL_SIZE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.StorageDriver != config.StorageDriverPostgres {
		t.Fatalf("expected default storage driver postgres, got %q", cfg.StorageDriver)
	}

	if cfg.AuditSink != config.AuditSinkLog {
		t.Fatalf("expected default audit sink log, got %q", cfg.AuditSink)
	}

	if cfg.DatabaseLockTimeout != 3*time.Second || cfg.TransactionTimeout != 10*time.Second {
		t.Fatalf("unexpected timeout defaults: lock=%s tx=%s", cfg.DatabaseLockTimeout, cfg.TransactionTimeout)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.RedisPoolSize != 10 {
		t.Fatalf("expected default redis pool size 10, got %d", cfg.RedisPoolSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("JWT_SECRET", "top-secret")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("OPENING_BALANCE", "100.00")
	t.Setenv("AUDIT_SINK", "webhook")
	t.Setenv("AUDIT_WEBHOOK_URL", "http://audit.local/events")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.JWTSecret != "top-secret" {
		t.Fatalf("expected JWT secret override, got %s", cfg.JWTSecret)
	}

	if cfg.StorageDriver != config.StorageDriverMemory || cfg.OpeningBalance != "100.00" {
		t.Fatalf("expected ledger overrides, got driver=%s opening=%s", cfg.StorageDriver, cfg.OpeningBalance)
	}

	if cfg.AuditSink != config.AuditSinkWebhook || cfg.AuditWebhookURL != "http://audit.local/events" {
		t.Fatalf("expected audit overrides, got sink=%s url=%s", cfg.AuditSink, cfg.AuditWebhookURL)
	}

	if cfg.RateLimitRPS != 2.5 {
		t.Fatalf("expected rate limit override, got %v", cfg.RateLimitRPS)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	original := os.Getenv("HTTP_READ_TIMEOUT")
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")
	t.Cleanup(func() {
		t.Setenv("HTTP_READ_TIMEOUT", original)
	})

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}
