package handler

import (
	"errors"
	"net/http"

	"bazaar/internal/domain"
	"bazaar/internal/domain/models"
	"bazaar/internal/domain/services"
	"bazaar/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var deniedErr *domain.DeniedError

	switch {
	case errors.As(err, &deniedErr):
		// Policy denials carry a machine-readable reason alongside the
		// RFC 7807 body so clients can branch without string matching.
		httputil.RespondErrorWithExtras(w, deniedErr.StatusCode(), deniedErr.Error(), map[string]interface{}{
			"reason": deniedErr.Reason,
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// resolveActor builds the request-scoped actor from the authenticated user ID
// stored in context by the auth middleware. An empty user ID resolves to the
// anonymous actor.
func resolveActor(r *http.Request, accounts services.AccountService) (models.ActorContext, error) {
	return accounts.ResolveActor(r.Context(), httputil.GetUserID(r))
}
