package catalog

import (
	"context"
	"fmt"
	"sync"

	"rent-kart/internal/model"

	"github.com/rs/zerolog"
)

// Cache is a read-only in-memory mirror of the product catalogue. The
// orchestration layer reads prices and rental tables from it; it never
// writes products. Refresh replaces the whole mirror, which cannot affect
// prices already frozen onto cart items or orders.
type Cache struct {
	repo   Repository
	logger zerolog.Logger

	mu       sync.RWMutex
	products map[string]model.Product
}

// NewCache creates a catalogue cache and performs the initial load.
func NewCache(ctx context.Context, repo Repository, logger zerolog.Logger) (*Cache, error) {
	c := &Cache{
		repo:     repo,
		logger:   logger.With().Str("component", "catalog-cache").Logger(),
		products: make(map[string]model.Product),
	}

	if err := c.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("failed to load catalogue: %w", err)
	}

	return c, nil
}

// Refresh reloads the mirror from the repository.
func (c *Cache) Refresh(ctx context.Context) error {
	products, err := c.repo.GetAll(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("catalogue refresh failed")
		return err
	}

	next := make(map[string]model.Product, len(products))
	for _, p := range products {
		next[p.ID] = p
	}

	c.mu.Lock()
	c.products = next
	c.mu.Unlock()

	c.logger.Info().Int("count", len(next)).Msg("catalogue refreshed")
	return nil
}

// Get returns a copy of the product with the given id, or ErrNotFound.
func (c *Cache) Get(id string) (*model.Product, error) {
	c.mu.RLock()
	p, ok := c.products[id]
	c.mu.RUnlock()

	if !ok {
		return nil, model.ErrNotFound
	}

	// Copy the option slice so callers cannot mutate the mirror.
	p.RentalOptions = append([]model.RentalOption(nil), p.RentalOptions...)
	return &p, nil
}

// List returns a copy of all cached products.
func (c *Cache) List() []model.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.Product, 0, len(c.products))
	for _, p := range c.products {
		p.RentalOptions = append([]model.RentalOption(nil), p.RentalOptions...)
		out = append(out, p)
	}
	return out
}
