package handler

import (
	"net/http"

	"github.com/iho/simplebank/internal/adapter/http/dto"
)

// AuthRecorder observes login attempts.
type AuthRecorder interface {
	RecordAuth(err error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	accountUC AccountService
	tokens    TokenIssuer
	recorder  AuthRecorder
}

// NewAuthHandler creates a new auth handler. recorder may be nil.
func NewAuthHandler(accountUC AccountService, tokens TokenIssuer, recorder AuthRecorder) *AuthHandler {
	return &AuthHandler{
		accountUC: accountUC,
		tokens:    tokens,
		recorder:  recorder,
	}
}

// Login verifies credentials and issues a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.accountUC.Authenticate(r.Context(), req.ToUseCaseInput())
	if h.recorder != nil {
		h.recorder.RecordAuth(err)
	}
	if err != nil {
		writeDomainError(w, r, "login failed", err)
		return
	}

	token, err := h.tokens.Generate(account)
	if err != nil {
		writeDomainError(w, r, "failed to generate token", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresIn: int64(h.tokens.TokenDuration().Seconds()),
		Account:   dto.AccountFromDomain(account),
	})
}
