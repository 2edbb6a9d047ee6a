package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/domain/services"
	"bazaar/internal/httputil"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	comments services.CommentService
	accounts services.AccountService
	logger   *slog.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments services.CommentService, accounts services.AccountService, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		accounts: accounts,
		logger:   logger,
	}
}

// CreateComment creates a comment under a listing
// POST /api/listings/{id}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.accounts)
	if err != nil {
		handleError(w, err)
		return
	}

	var req services.CreateCommentRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// The path is authoritative for the parent listing.
	req.ListingID = r.PathValue("id")

	comment, err := h.comments.CreateComment(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, comment)
}

// ListComments lists all comments under a listing, oldest first
// GET /api/listings/{id}/comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListComments(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"comments": comments,
		"total":    len(comments),
	})
}

// DeleteComment deletes a comment; author, parent listing owner and admin
// are each sufficient
// DELETE /api/comments/{id}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.accounts)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.comments.DeleteComment(r.Context(), actor, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleLike flips the caller's like on a comment
// POST /api/comments/{id}/like
func (h *CommentHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.accounts)
	if err != nil {
		handleError(w, err)
		return
	}

	result, err := h.comments.ToggleLike(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
