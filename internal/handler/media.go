package handler

import (
	"log/slog"
	"net/http"

	"bazaar/internal/domain/services"
	"bazaar/internal/httputil"
	"bazaar/internal/media"
)

// MediaHandler handles listing media upload requests
type MediaHandler struct {
	media    *media.Service
	accounts services.AccountService
	logger   *slog.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService *media.Service, accounts services.AccountService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		media:    mediaService,
		accounts: accounts,
		logger:   logger,
	}
}

type presignUploadBody struct {
	ContentType string `json:"content_type"`
}

// PresignUpload issues a presigned S3 PUT URL for a listing image
// POST /api/listings/{id}/media
func (h *MediaHandler) PresignUpload(w http.ResponseWriter, r *http.Request) {
	actor, err := resolveActor(r, h.accounts)
	if err != nil {
		handleError(w, err)
		return
	}

	var body presignUploadBody
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	ticket, err := h.media.PresignListingImage(r.Context(), actor, r.PathValue("id"), body.ContentType)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, ticket)
}
