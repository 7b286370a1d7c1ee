package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/desertthunder/tdx/internal/docstore"
	"github.com/desertthunder/tdx/internal/shared"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// writeError maps the service error taxonomy to HTTP statuses. Validation
// sentinels keep their own message; anything unrecognized is treated as a
// store/transport failure and hidden behind a generic body.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrEmptyName),
		errors.Is(err, shared.ErrEmptyTitle),
		errors.Is(err, shared.ErrInvalidStatus),
		errors.Is(err, shared.ErrInvalidPriority),
		errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrPasswordMismatch),
		errors.Is(err, shared.ErrInvalidEmail),
		errors.Is(err, shared.ErrWeakPassword):
		writeErrorMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrEmailInUse):
		writeErrorMessage(w, http.StatusConflict, shared.ErrEmailInUse.Error())
	case errors.Is(err, shared.ErrInvalidCredentials):
		writeErrorMessage(w, http.StatusUnauthorized, shared.ErrInvalidCredentials.Error())
	case errors.Is(err, shared.ErrNotAuthenticated), errors.Is(err, shared.ErrTokenRevoked):
		writeErrorMessage(w, http.StatusUnauthorized, "not authenticated")
	case errors.Is(err, shared.ErrTooManyAttempts):
		writeErrorMessage(w, http.StatusTooManyRequests, shared.ErrTooManyAttempts.Error())
	case errors.Is(err, docstore.ErrNoDocument):
		writeErrorMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, shared.ErrStoreUnavailable):
		writeErrorMessage(w, http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		writeErrorMessage(w, http.StatusBadGateway, "service temporarily unavailable")
	}
}

func decodeJSON(w http.ResponseWriter, req *http.Request, v any) bool {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
