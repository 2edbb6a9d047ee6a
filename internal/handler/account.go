package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/domain/services"
	"bazaar/internal/httputil"
)

// AccountHandler handles account HTTP requests
type AccountHandler struct {
	accounts services.AccountService
	logger   *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts services.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accounts: accounts,
		logger:   logger,
	}
}

// GetMe returns the caller's account snapshot
// GET /api/accounts/me
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	account, err := h.accounts.GetAccount(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, account)
}
