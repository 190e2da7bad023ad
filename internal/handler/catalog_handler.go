package handler

import (
	"net/http"

	"rent-kart/internal/catalog"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CatalogHandler serves the read-only product catalogue.
type CatalogHandler struct {
	cache  *catalog.Cache
	logger zerolog.Logger
}

// NewCatalogHandler creates a catalogue handler.
func NewCatalogHandler(cache *catalog.Cache, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		cache:  cache,
		logger: logger.With().Str("handler", "catalog").Logger(),
	}
}

// List handles GET /api/products.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.cache.List())
}

// Get handles GET /api/products/{id}.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.cache.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, product)
}
