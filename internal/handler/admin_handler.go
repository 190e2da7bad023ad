package handler

import (
	"encoding/json"
	"net/http"

	"rent-kart/internal/admin"
	"rent-kart/internal/kyc"
	"rent-kart/internal/model"
	"rent-kart/internal/order"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// AdminHandler exposes the administrative console: cross-customer order
// management and KYC review. Routes carrying it sit behind API-key auth.
type AdminHandler struct {
	engine   *order.Engine
	reviewer *kyc.Reviewer
	console  *admin.Console
	logger   zerolog.Logger
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(engine *order.Engine, reviewer *kyc.Reviewer, console *admin.Console, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		engine:   engine,
		reviewer: reviewer,
		console:  console,
		logger:   logger.With().Str("handler", "admin").Logger(),
	}
}

// ListOrders handles GET /admin/orders.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.console.Orders())
}

// ListRecords handles GET /admin/records.
func (h *AdminHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.console.Records())
}

// ListTickets handles GET /admin/tickets.
func (h *AdminHandler) ListTickets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.console.Tickets())
}

// VerificationQueue handles GET /admin/kyc/queue.
func (h *AdminHandler) VerificationQueue(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.console.VerificationQueue())
}

type statusRequest struct {
	Status   model.OrderStatus   `json:"status"`
	Tracking *model.TrackingInfo `json:"tracking,omitempty"`
	Note     string              `json:"note,omitempty"`
}

// UpdateStatus handles PATCH /admin/orders/{id}/status.
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	updated, err := h.engine.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), req.Status, req.Tracking, req.Note)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

type noteRequest struct {
	Note string `json:"note"`
}

// AddNote handles POST /admin/orders/{id}/notes.
func (h *AdminHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	if err := h.engine.AddNote(r.Context(), chi.URLParam(r, "id"), req.Note); err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RetryInvoice handles POST /admin/orders/{id}/invoice.
func (h *AdminHandler) RetryInvoice(w http.ResponseWriter, r *http.Request) {
	url, err := h.engine.RetryInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"invoiceUrl": url})
}

type reviewRequest struct {
	Decision model.KYCStatus `json:"decision"`
	Reason   string          `json:"reason,omitempty"`
}

// ReviewKYC handles POST /admin/customers/{id}/kyc.
func (h *AdminHandler) ReviewKYC(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", h.logger)
		return
	}

	materialized, err := h.reviewer.Review(r.Context(), chi.URLParam(r, "id"), req.Decision, req.Reason)
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"decision":          req.Decision,
		"materializedOrder": materialized,
	})
}
