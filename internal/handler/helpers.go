package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"parley/internal/domain"
	"parley/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrEmptyMessage):
		httputil.RespondError(w, http.StatusBadRequest, "Message cannot be empty")
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		// One generic message for unknown username and wrong password.
		httputil.RespondError(w, http.StatusUnauthorized, domain.ErrInvalidCredentials.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUsernameTaken):
		httputil.RespondError(w, http.StatusConflict, domain.ErrUsernameTaken.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrGenerationFailed):
		// Never leak upstream provider errors to the client.
		httputil.RespondError(w, http.StatusBadGateway, "An error occurred while communicating with the AI.")
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// PathParam extracts a required UUID path parameter. Every id and share
// token in the API is a UUID, and a malformed one can never name an existing
// resource, so it gets the same 404 a wrong-but-well-formed id would —
// without ever reaching the database.
func PathParam(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	value := r.PathValue(name)
	if value == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	if uuid.Validate(value) != nil {
		httputil.RespondError(w, http.StatusNotFound, label+" not found")
		return "", false
	}
	return value, true
}
