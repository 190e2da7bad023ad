// Package admin holds the administrative console's live view over the
// whole customer collection.
package admin

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"rent-kart/internal/model"
	"rent-kart/internal/store"

	"github.com/rs/zerolog"
)

// Console mirrors every customer record for cross-customer views (all
// orders, all tickets, verification queue). It loads the collection once
// and then tracks it through the collection subscription.
type Console struct {
	store  store.RecordStore
	logger zerolog.Logger

	mu      sync.RWMutex
	records map[string]model.CustomerRecord
	cancel  store.CancelFunc
}

// NewConsole creates the console and starts its collection subscription.
func NewConsole(ctx context.Context, recordStore store.RecordStore, logger zerolog.Logger) (*Console, error) {
	c := &Console{
		store:   recordStore,
		logger:  logger.With().Str("component", "admin-console").Logger(),
		records: make(map[string]model.CustomerRecord),
	}

	records, err := recordStore.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer collection: %w", err)
	}
	for _, record := range records {
		c.records[record.ID] = record
	}

	cancel, err := recordStore.SubscribeCollection(ctx, c.onChange)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to customer collection: %w", err)
	}
	c.cancel = cancel

	c.logger.Info().Int("records", len(c.records)).Msg("admin console view loaded")
	return c, nil
}

// Close stops the collection subscription.
func (c *Console) Close() {
	if c.cancel != nil {
		c.cancel()
	}
}

func (c *Console) onChange(record *model.CustomerRecord) {
	c.mu.Lock()
	c.records[record.ID] = *record
	c.mu.Unlock()
}

// Record returns one customer record from the mirrored collection.
func (c *Console) Record(customerID string) (*model.CustomerRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	record, ok := c.records[customerID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return record.Clone(), nil
}

// Records returns all mirrored customer records.
func (c *Console) Records() []model.CustomerRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.CustomerRecord, 0, len(c.records))
	for _, record := range c.records {
		out = append(out, *record.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Orders returns every order across all customers, newest first.
func (c *Console) Orders() []model.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []model.Order
	for _, record := range c.records {
		out = append(out, record.Orders...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Tickets returns every support ticket across all customers.
func (c *Console) Tickets() []model.SupportTicket {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []model.SupportTicket
	for _, record := range c.records {
		out = append(out, record.Tickets...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// VerificationQueue returns customers whose KYC submission awaits review.
func (c *Console) VerificationQueue() []model.CustomerRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []model.CustomerRecord
	for _, record := range c.records {
		if record.KYC.Status == model.KYCPending {
			out = append(out, *record.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
