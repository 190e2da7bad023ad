// Package invoice produces order artifacts (invoice and rental agreement)
// and uploads them to an artifact store. Everything here is best-effort:
// callers log failures and carry on, an order is never blocked on its
// paperwork.
package invoice

import (
	"context"
	"fmt"

	"rent-kart/internal/model"

	"github.com/rs/zerolog"
)

// Renderer renders an order into artifact bytes.
type Renderer interface {
	// RenderInvoice renders the invoice document for the order.
	RenderInvoice(order *model.Order) ([]byte, error)

	// RenderAgreement renders the rental agreement for a rental order.
	RenderAgreement(order *model.Order) ([]byte, error)
}

// ArtifactStore uploads rendered artifacts and returns a public URL.
type ArtifactStore interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
}

// Service renders and stores order artifacts.
type Service struct {
	renderer  Renderer
	artifacts ArtifactStore
	logger    zerolog.Logger
}

// NewService creates an invoice service.
func NewService(renderer Renderer, artifacts ArtifactStore, logger zerolog.Logger) *Service {
	return &Service{
		renderer:  renderer,
		artifacts: artifacts,
		logger:    logger.With().Str("component", "invoice").Logger(),
	}
}

// InvoiceFor renders and uploads the invoice for an order, returning its
// public URL.
func (s *Service) InvoiceFor(ctx context.Context, order *model.Order) (string, error) {
	data, err := s.renderer.RenderInvoice(order)
	if err != nil {
		return "", fmt.Errorf("failed to render invoice: %w", err)
	}

	url, err := s.artifacts.Upload(ctx, fmt.Sprintf("invoices/%s.txt", order.ID), data)
	if err != nil {
		return "", fmt.Errorf("failed to upload invoice: %w", err)
	}

	s.logger.Debug().Str("order_id", order.ID).Str("url", url).Msg("invoice generated")
	return url, nil
}

// AgreementFor renders and uploads the rental agreement for an order.
func (s *Service) AgreementFor(ctx context.Context, order *model.Order) (string, error) {
	data, err := s.renderer.RenderAgreement(order)
	if err != nil {
		return "", fmt.Errorf("failed to render agreement: %w", err)
	}

	url, err := s.artifacts.Upload(ctx, fmt.Sprintf("agreements/%s.txt", order.ID), data)
	if err != nil {
		return "", fmt.Errorf("failed to upload agreement: %w", err)
	}

	s.logger.Debug().Str("order_id", order.ID).Str("url", url).Msg("agreement generated")
	return url, nil
}
