package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"rent-kart/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: message})
}

// writeDomainError maps a business failure onto an HTTP response.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if !errors.As(err, &de) {
		writeError(w, http.StatusInternalServerError, "internal error", logger)
		return
	}

	status := http.StatusBadRequest
	switch de.Code {
	case model.ErrCodeUnauthenticated:
		status = http.StatusUnauthorized
	case model.ErrCodeNotFound:
		status = http.StatusNotFound
	case model.ErrCodeInvalidTransition, model.ErrCodeKYCRequired:
		status = http.StatusConflict
	case model.ErrCodeRemoteWriteFailed:
		status = http.StatusServiceUnavailable
	case model.ErrCodeInternalError:
		status = http.StatusInternalServerError
	}

	logger.Warn().Str("code", de.Code).Str("error", err.Error()).Int("status", status).Msg("domain error")
	writeJSON(w, status, model.ErrorResponse{Error: de.Code, Message: err.Error()})
}
