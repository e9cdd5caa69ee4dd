package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/simplebank/internal/domain"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Engine metrics
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	OperationAmount   *prometheus.HistogramVec

	// Account metrics
	AccountsRegistered prometheus.Counter

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Audit metrics
	AuditNotifications *prometheus.CounterVec

	// Reconciliation metrics
	ReconciliationRuns *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates and registers all metrics with the default registerer.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates all metrics and registers them with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simplebank_operations_total",
				Help: "Total engine operations by type and outcome",
			},
			[]string{"operation", "outcome"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "simplebank_operation_duration_seconds",
				Help:    "Duration of engine operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		OperationAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "simplebank_operation_amount",
				Help:    "Amounts of committed engine operations",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"operation"},
		),

		AccountsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "simplebank_accounts_registered_total",
			Help: "Total number of registered accounts",
		}),

		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simplebank_auth_attempts_total",
				Help: "Total login attempts",
			},
			[]string{"status"},
		),

		AuditNotifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simplebank_audit_notifications_total",
				Help: "Total audit notifications by outcome",
			},
			[]string{"status"},
		),

		ReconciliationRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "simplebank_reconciliation_runs_total",
				Help: "Total reconciliation runs by result",
			},
			[]string{"result"},
		),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "simplebank_rate_limit_hits_total",
			Help: "Total requests rejected by the rate limiter",
		}),
	}
}

// RecordOperation records the outcome of a deposit or transfer.
func (m *Metrics) RecordOperation(operation string, err error, amount decimal.Decimal, duration time.Duration) {
	m.Operations.WithLabelValues(operation, Outcome(err)).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())

	if err == nil {
		m.OperationAmount.WithLabelValues(operation).Observe(amount.InexactFloat64())
	}
}

// RecordRegistration counts a newly opened account.
func (m *Metrics) RecordRegistration() {
	m.AccountsRegistered.Inc()
}

// RecordAudit records a single audit delivery attempt.
func (m *Metrics) RecordAudit(err error) {
	status := "delivered"
	if err != nil {
		status = "failed"
	}
	m.AuditNotifications.WithLabelValues(status).Inc()
}

// RecordAuditDropped records an event discarded because the queue was full.
func (m *Metrics) RecordAuditDropped() {
	m.AuditNotifications.WithLabelValues("dropped").Inc()
}

// RecordAuth records a login attempt.
func (m *Metrics) RecordAuth(err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.AuthAttempts.WithLabelValues(status).Inc()
}

// RecordReconciliation records a reconciliation run.
func (m *Metrics) RecordReconciliation(reconciled bool, err error) {
	result := "reconciled"
	switch {
	case err != nil:
		result = "error"
	case !reconciled:
		result = "inconsistent"
	}
	m.ReconciliationRuns.WithLabelValues(result).Inc()
}

var outcomes = []struct {
	err   error
	label string
}{
	{domain.ErrInvalidAmount, "invalid_amount"},
	{domain.ErrInsufficientFunds, "insufficient_funds"},
	{domain.ErrReceiverNotFound, "receiver_not_found"},
	{domain.ErrSelfTransfer, "self_transfer"},
	{domain.ErrAccountNotFound, "account_not_found"},
	{domain.ErrTransientStorage, "transient"},
}

// Outcome maps an operation error to a low-cardinality label.
func Outcome(err error) string {
	if err == nil {
		return "success"
	}

	for _, o := range outcomes {
		if errors.Is(err, o.err) {
			return o.label
		}
	}

	return "fatal"
}
