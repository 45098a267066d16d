package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"medishare-backend/internal/domain"
	"medishare-backend/internal/logger"
	"medishare-backend/internal/security"
)

// response is the envelope every endpoint returns.
type response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, response{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, response{Success: true, Message: message})
}

// respondError translates service-layer errors into HTTP statuses. Unknown
// errors become a 500 with a generic message so internals never leak.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	var conflictErr *domain.ConflictError

	switch {
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, response{
			Success: false,
			Message: "validation failed",
			Errors:  validationErr.Fields,
		})
	case errors.As(err, &conflictErr):
		respondJSON(w, http.StatusConflict, response{Success: false, Message: conflictErr.Error()})
	case errors.Is(err, domain.ErrEquipmentUnavailable):
		respondJSON(w, http.StatusConflict, response{Success: false, Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition):
		respondJSON(w, http.StatusConflict, response{Success: false, Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists):
		respondJSON(w, http.StatusConflict, response{Success: false, Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, response{Success: false, Message: "resource not found"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, response{Success: false, Message: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		respondJSON(w, http.StatusForbidden, response{Success: false, Message: "you are not allowed to perform this action"})
	case errors.Is(err, security.ErrExpiredToken), errors.Is(err, security.ErrInvalidToken), errors.Is(err, security.ErrWrongTokenType):
		respondJSON(w, http.StatusUnauthorized, response{Success: false, Message: err.Error()})
	default:
		logger.ErrorContext(r.Context(), "internal error", "path", r.URL.Path, "error", err)
		respondJSON(w, http.StatusInternalServerError, response{Success: false, Message: "internal server error"})
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("body", "invalid JSON payload")
	}
	return nil
}
