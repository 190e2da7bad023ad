package handler

import (
	"encoding/json"
	"net/http"

	"rent-kart/internal/model"
	"rent-kart/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// SessionHandler exposes the signed-in customer's operations: cart,
// checkout, addresses, wishlist, tickets, and KYC submission. Every
// request resolves the current session first; without one the caller gets
// UNAUTHENTICATED and is expected to prompt sign-in.
type SessionHandler struct {
	manager *session.Manager
	logger  zerolog.Logger
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(manager *session.Manager, logger zerolog.Logger) *SessionHandler {
	return &SessionHandler{
		manager: manager,
		logger:  logger.With().Str("handler", "session").Logger(),
	}
}

// Record handles GET /api/me.
func (h *SessionHandler) Record(w http.ResponseWriter, r *http.Request) {
	sess, err := h.manager.Current()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, sess.Record())
}

type addItemRequest struct {
	ProductID    string                `json:"productId"`
	Mode         model.AcquisitionMode `json:"mode"`
	TenureMonths int                   `json:"tenureMonths,omitempty"`
	Variant      string                `json:"variant,omitempty"`
	Addon        *model.WarrantyAddon  `json:"addon,omitempty"`
}

// AddItem handles POST /api/cart/items.
func (h *SessionHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sess, err := h.manager.Current()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	item, err := sess.AddItem(r.Context(), req.ProductID, req.Mode, req.TenureMonths, req.Variant, req.Addon)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

type quantityRequest struct {
	Delta int `json:"delta"`
}

// SetQuantity handles PATCH /api/cart/items/{id}/quantity.
func (h *SessionHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	sess, err := h.manager.Current()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	var req quantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := sess.SetQuantity(r.Context(), chi.URLParam(r, "id"), req.Delta); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sess.Record().Cart)
}

type tenureRequest struct {
	TenureMonths int `json:"tenureMonths"`
}

// SetTenure handles PATCH /api/cart/items/{id}/tenure.
func (h *SessionHandler) SetTenure(w http.ResponseWriter, r *http.Request) {
	sess, err := h.manager.Current()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	var req tenureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := sess.SetTenure(r.Context(), chi.URLParam(r, "id"), req.TenureMonths); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sess.Record().Cart)
}

// RemoveItem handles DELETE /api/cart/items/{id}.
func (h *SessionHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sess, err := h.manager.Current()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := sess.RemoveItem(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearCart handles DELETE /api/cart.
func (h *SessionHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sess, err := h.manager.Current()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := sess.Clear(r.Context()); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Checkout handles POST /api/checkout.
func (h *SessionHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sess, err := h.manager.Current()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	var req session.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	result, err := sess.Checkout(r.Context(), req)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	status := http.StatusCreated
	if result.VerificationRequired {
		status = http.StatusAccepted
	}
	writeJSON(w, status, result)
}

// RetrySync handles POST /api/sync/retry: re-pushes local mutations kept
// after a failed remote write.
func (h *SessionHandler) RetrySync(w http.ResponseWriter, r *http.Request) {
	sess, err := h.manager.Current()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := sess.Retry(r.Context()); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sess.Record())
}

// AddAddress handles POST /api/addresses.
func (h *SessionHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	sess, err := h.manager.Current()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	var addr model.Address
	if err := json.NewDecoder(r.Body).Decode(&addr); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	created, err := sess.AddAddress(r.Context(), addr)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// RemoveAddress handles DELETE /api/addresses/{id}.
func (h *SessionHandler) RemoveAddress(w http.ResponseWriter, r *http.Request) {
	sess, err := h.manager.Current()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := sess.RemoveAddress(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleWishlist handles POST /api/wishlist/{productId}.
func (h *SessionHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	sess, err := h.manager.Current()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	if err := sess.ToggleWishlist(r.Context(), chi.URLParam(r, "productId")); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, sess.Record().Wishlist)
}

type ticketRequest struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// OpenTicket handles POST /api/tickets.
func (h *SessionHandler) OpenTicket(w http.ResponseWriter, r *http.Request) {
	sess, err := h.manager.Current()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	var req ticketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	ticket, err := sess.OpenTicket(r.Context(), req.Subject, req.Message)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, ticket)
}

type kycSubmitRequest struct {
	DocumentRefs []string `json:"documentRefs"`
}

// SubmitKYC handles POST /api/kyc/documents.
func (h *SessionHandler) SubmitKYC(w http.ResponseWriter, r *http.Request) {
	sess, err := h.manager.Current()
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	var req kycSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := sess.SubmitKYCDocuments(r.Context(), req.DocumentRefs); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusAccepted, sess.Record().KYC)
}
