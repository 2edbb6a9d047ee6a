package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"bazaar/internal/domain/models"
	"bazaar/internal/domain/services"
	"bazaar/internal/httputil"
)

// ListingHandler handles listing HTTP requests
type ListingHandler struct {
	listings services.ListingService
	accounts services.AccountService
	logger   *slog.Logger
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listings services.ListingService, accounts services.AccountService, logger *slog.Logger) *ListingHandler {
	return &ListingHandler{
		listings: listings,
		accounts: accounts,
		logger:   logger,
	}
}

// CreateListing creates a new listing in draft state
// POST /api/listings
func (h *ListingHandler) CreateListing(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.accounts)
	if err != nil {
		handleError(w, err)
		return
	}

	var req services.CreateListingRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.OwnerID = actor.ID

	listing, err := h.listings.CreateListing(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, listing)
}

// GetListing retrieves a single listing
// GET /api/listings/{id}
func (h *ListingHandler) GetListing(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.accounts)
	if err != nil {
		handleError(w, err)
		return
	}

	view, err := h.listings.GetListing(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, view)
}

// ListPublished lists published listings of a type, featured first
// GET /api/listings?type=classified_ad&limit=50&offset=0
func (h *ListingHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	resourceType := models.ResourceType(r.URL.Query().Get("type"))
	limit, offset := pagination(r)

	views, err := h.listings.ListPublished(r.Context(), resourceType, limit, offset)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"listings": views,
		"total":    len(views),
	})
}

// ListMine lists all of the caller's own listings regardless of state
// GET /api/listings/me
func (h *ListingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.accounts)
	if err != nil {
		handleError(w, err)
		return
	}

	views, err := h.listings.ListMine(r.Context(), actor)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"listings": views,
		"total":    len(views),
	})
}

// updateListingBody uses OptionalString so PATCH can distinguish an absent
// field from an explicit empty string.
type updateListingBody struct {
	Title httputil.OptionalString `json:"title"`
	Body  httputil.OptionalString `json:"body"`
}

// UpdateListing edits a listing's title and body
// PATCH /api/listings/{id}
func (h *ListingHandler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.accounts)
	if err != nil {
		handleError(w, err)
		return
	}

	var body updateListingBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := services.UpdateListingRequest{}
	if body.Title.Present {
		req.Title = body.Title.Value
	}
	if body.Body.Present {
		req.Body = body.Body.Value
	}

	listing, err := h.listings.UpdateListing(r.Context(), actor, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listing)
}

// DeleteListing removes a listing
// DELETE /api/listings/{id}
func (h *ListingHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.accounts)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.listings.DeleteListing(r.Context(), actor, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Publish transitions a listing to the published state
// POST /api/listings/{id}/publish
func (h *ListingHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.StatePublished)
}

// Suspend transitions a listing to the suspended state (admin only)
// POST /api/listings/{id}/suspend
func (h *ListingHandler) Suspend(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.StateSuspended)
}

// Restore returns a suspended listing to draft (admin only)
// POST /api/listings/{id}/restore
func (h *ListingHandler) Restore(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, models.StateDraft)
}

func (h *ListingHandler) transition(w http.ResponseWriter, r *http.Request, target models.LifecycleState) {
	actor, err := resolveActor(r, h.accounts)
	if err != nil {
		handleError(w, err)
		return
	}

	listing, err := h.listings.Transition(r.Context(), actor, r.PathValue("id"), target)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listing)
}

type featureListingBody struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// Feature marks a listing featured until the given expiration (admin only)
// POST /api/listings/{id}/feature
func (h *ListingHandler) Feature(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.accounts)
	if err != nil {
		handleError(w, err)
		return
	}

	var body featureListingBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	listing, err := h.listings.FeatureListing(r.Context(), actor, r.PathValue("id"), body.ExpiresAt)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, listing)
}

// pagination parses limit/offset query params with sane defaults.
func pagination(r *http.Request) (limit, offset int) {
	limit = 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
