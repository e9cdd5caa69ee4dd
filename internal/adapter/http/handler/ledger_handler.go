package handler

import (
	"net/http"

	"github.com/iho/simplebank/internal/adapter/http/dto"
	"github.com/iho/simplebank/internal/domain"
	"github.com/iho/simplebank/internal/usecase"
)

// ReconciliationRecorder observes reconciliation runs.
type ReconciliationRecorder interface {
	RecordReconciliation(reconciled bool, err error)
}

// LedgerHandler handles transaction history and reconciliation.
type LedgerHandler struct {
	ledgerUC         LedgerService
	reconciliationUC ReconciliationService
	recorder         ReconciliationRecorder
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, reconciliationUC ReconciliationService) *LedgerHandler {
	return &LedgerHandler{
		ledgerUC:         ledgerUC,
		reconciliationUC: reconciliationUC,
	}
}

// WithRecorder sets the reconciliation recorder.
func (h *LedgerHandler) WithRecorder(recorder ReconciliationRecorder) *LedgerHandler {
	h.recorder = recorder
	return h
}

// History lists the caller's transactions, newest first.
func (h *LedgerHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	limit, offset := domain.ValidatePagination(parseIntQuery(r, "limit", 0), parseIntQuery(r, "offset", 0))

	records, err := h.ledgerUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		AccountID: id,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeDomainError(w, r, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(records, id, limit, offset))
}

// Reconciliation reports whether balances agree with the ledger.
func (h *LedgerHandler) Reconciliation(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.Reconcile(r.Context())
	if h.recorder != nil {
		h.recorder.RecordReconciliation(err == nil && report.IsReconciled, err)
	}
	if err != nil {
		writeDomainError(w, r, "reconciliation failed", err)
		return
	}

	status := http.StatusOK
	if !report.IsReconciled {
		status = http.StatusConflict
	}

	writeJSON(w, status, dto.ReconciliationFromReport(report))
}
