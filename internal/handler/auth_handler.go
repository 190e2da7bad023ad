package handler

import (
	"encoding/json"
	"net/http"

	"rent-kart/internal/auth"

	"github.com/rs/zerolog"
)

// AuthHandler exposes the authentication provider.
type AuthHandler struct {
	provider auth.Provider
	logger   zerolog.Logger
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(provider auth.Provider, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		logger:   logger.With().Str("handler", "auth").Logger(),
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// SignUp handles POST /api/auth/signup.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	identity, err := h.provider.CreateIdentity(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, identity)
}

// SignIn handles POST /api/auth/signin.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	identity, err := h.provider.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, identity)
}

// SignOut handles POST /api/auth/signout.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.SignOut(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to sign out", h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetPassword handles POST /api/auth/reset.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.provider.ResetPassword(r.Context(), req.Email); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to trigger reset", h.logger)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
