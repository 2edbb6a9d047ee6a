package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/domain/models"
	"bazaar/internal/domain/services"
	"bazaar/internal/httputil"
	"bazaar/internal/policy"
)

// ClickHandler handles contact-click HTTP requests
type ClickHandler struct {
	clicks   services.ClickService
	accounts services.AccountService
	logger   *slog.Logger
}

// NewClickHandler creates a new click handler
func NewClickHandler(clicks services.ClickService, accounts services.AccountService, logger *slog.Logger) *ClickHandler {
	return &ClickHandler{
		clicks:   clicks,
		accounts: accounts,
		logger:   logger,
	}
}

type recordClickBody struct {
	ClickType models.ClickType `json:"click_type"`
}

// RecordClick records a contact-info click, deduplicated per session
// POST /api/listings/{id}/clicks
//
// The session comes from the X-Session-ID header so anonymous visitors
// dedupe the same way signed-in ones do. Returns 201 on first click and
// 200 when the (session, listing) pair was already counted.
func (h *ClickHandler) RecordClick(w http.ResponseWriter, r *http.Request) {
	var body recordClickBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sessionID := httputil.GetSessionID(r)
	if sessionID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "X-Session-ID header is required")
		return
	}

	outcome, err := h.clicks.RecordClick(r.Context(), sessionID, r.PathValue("id"), body.ClickType)
	if err != nil {
		handleError(w, err)
		return
	}

	status := http.StatusOK
	if outcome == policy.ClickRecorded {
		status = http.StatusCreated
	}
	httputil.RespondJSON(w, status, map[string]interface{}{
		"outcome": outcome,
	})
}

// CountClicks returns the listing's distinct-session click count
// GET /api/listings/{id}/clicks
func (h *ClickHandler) CountClicks(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.accounts)
	if err != nil {
		handleError(w, err)
		return
	}

	count, err := h.clicks.CountClicks(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"count": count,
	})
}
