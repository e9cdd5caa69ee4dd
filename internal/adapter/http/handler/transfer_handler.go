package handler

import (
	"net/http"

	"github.com/iho/simplebank/internal/adapter/http/dto"
)

// TransferHandler handles deposits and transfers.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Deposit credits the caller's account.
func (h *TransferHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.transferUC.Deposit(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeDomainError(w, r, "deposit failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.OperationFromResult(result, id))
}

// Transfer moves money from the caller to a receiver.
func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.transferUC.Transfer(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeDomainError(w, r, "transfer failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.OperationFromResult(result, id))
}
