package handler

import (
	"net/http"

	"github.com/iho/simplebank/internal/adapter/http/dto"
)

// RegistrationRecorder counts opened accounts.
type RegistrationRecorder interface {
	RecordRegistration()
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	recorder  RegistrationRecorder
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// WithRecorder sets the registration recorder.
func (h *AccountHandler) WithRecorder(recorder RegistrationRecorder) *AccountHandler {
	h.recorder = recorder
	return h
}

// Register opens a new account.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.accountUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, "failed to register account", err)
		return
	}
	if h.recorder != nil {
		h.recorder.RecordRegistration()
	}

	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Me returns the caller's profile and balance.
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	account, err := h.accountUC.GetProfile(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// UpdateProfile changes the caller's profile fields.
func (h *AccountHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := accountID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.accountUC.UpdateProfile(r.Context(), id, req.ToDomain())
	if err != nil {
		writeDomainError(w, r, "failed to update profile", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
