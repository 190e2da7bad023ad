// Package store holds the remote record store contract and its
// PostgreSQL/Redis implementation. Each customer owns exactly one
// authoritative document; clients hold optimistic mirrors of it and the
// admin console watches the whole collection.
package store

import (
	"context"

	"rent-kart/internal/model"
)

// ChangeHandler receives a fresh snapshot of a customer record whenever
// the authoritative copy changes. Intermediate states may be coalesced;
// only the latest snapshot is guaranteed to be delivered.
type ChangeHandler func(record *model.CustomerRecord)

// CancelFunc tears down a subscription.
type CancelFunc func()

// RecordStore is the narrow contract the orchestration layer writes and
// subscribes through.
type RecordStore interface {
	// EnsureRecord creates the record if it does not exist yet.
	EnsureRecord(ctx context.Context, record *model.CustomerRecord) error

	// GetRecord fetches the authoritative copy of one customer record.
	// Returns model.ErrNotFound when no record exists.
	GetRecord(ctx context.Context, customerID string) (*model.CustomerRecord, error)

	// WriteFields merges the given top-level fields into the record.
	// Writes are field-level, so the customer's cart writes and the
	// administrator's order-status writes never contend on the whole
	// document.
	WriteFields(ctx context.Context, customerID string, fields map[string]any) error

	// Apply runs fn against the record inside a single read-modify-write
	// transaction holding a row lock. This is the atomic guard used when
	// an approval materializes a deferred checkout: the presence check
	// and the clearing of the consumed fields commit together, so a
	// concurrent second approval observes the cleared state and no-ops.
	Apply(ctx context.Context, customerID string, fn func(record *model.CustomerRecord) error) error

	// Subscribe watches one customer record.
	Subscribe(ctx context.Context, customerID string, handler ChangeHandler) (CancelFunc, error)

	// SubscribeCollection watches every customer record; used by the
	// admin console for cross-customer views.
	SubscribeCollection(ctx context.Context, handler ChangeHandler) (CancelFunc, error)

	// ListRecords returns all customer records (admin initial load).
	ListRecords(ctx context.Context) ([]model.CustomerRecord, error)

	// FindOrder locates an order by id across all customers' records.
	FindOrder(ctx context.Context, orderID string) (customerID string, order *model.Order, err error)
}
