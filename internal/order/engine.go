package order

import (
	"context"
	"fmt"
	"time"

	"rent-kart/internal/invoice"
	"rent-kart/internal/model"
	"rent-kart/internal/notify"
	"rent-kart/internal/store"

	"github.com/rs/zerolog"
)

// Engine performs administrative order operations. The administrator is a
// different actor than the customer who placed the order and operates over
// the full order set, so every operation starts with a cross-customer
// lookup and runs inside a locked document transaction.
type Engine struct {
	store    store.RecordStore
	invoices *invoice.Service
	notifier *notify.Notifier
	logger   zerolog.Logger
}

// NewEngine creates an order engine.
func NewEngine(recordStore store.RecordStore, invoices *invoice.Service, notifier *notify.Notifier, logger zerolog.Logger) *Engine {
	return &Engine{
		store:    recordStore,
		invoices: invoices,
		notifier: notifier,
		logger:   logger.With().Str("component", "order-engine").Logger(),
	}
}

// UpdateOrderStatus advances an order to the next status, wherever its
// owning record lives. Shipped requires tracking info. The best-effort
// "update" notification fires only after the transition commits.
func (e *Engine) UpdateOrderStatus(ctx context.Context, orderID string, next model.OrderStatus, tracking *model.TrackingInfo, note string) (*model.Order, error) {
	customerID, _, err := e.store.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var updated *model.Order
	err = e.store.Apply(ctx, customerID, func(record *model.CustomerRecord) error {
		o := record.FindOrder(orderID)
		if o == nil {
			return model.ErrNotFound
		}
		if err := Transition(o, next, tracking, note, time.Now()); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		e.logger.Warn().
			Err(err).
			Str("order_id", orderID).
			Str("next_status", string(next)).
			Msg("status change rejected")
		return nil, err
	}

	e.logger.Info().
		Str("order_id", orderID).
		Str("customer_id", customerID).
		Str("status", string(next)).
		Msg("order status updated")

	e.notifier.Notify(ctx, notify.Event{
		Type:       notify.EventOrderUpdated,
		CustomerID: customerID,
		OrderID:    orderID,
		Detail:     string(next),
	})

	return updated, nil
}

// AddNote appends an internal note to the order. Notes are append-only.
func (e *Engine) AddNote(ctx context.Context, orderID, note string) error {
	customerID, _, err := e.store.FindOrder(ctx, orderID)
	if err != nil {
		return err
	}

	return e.store.Apply(ctx, customerID, func(record *model.CustomerRecord) error {
		o := record.FindOrder(orderID)
		if o == nil {
			return model.ErrNotFound
		}
		o.Notes = append(o.Notes, note)
		return nil
	})
}

// RetryInvoice generates the invoice for an order whose placement-time
// attempt failed. On success the artifact reference is written back onto
// the order.
func (e *Engine) RetryInvoice(ctx context.Context, orderID string) (string, error) {
	customerID, o, err := e.store.FindOrder(ctx, orderID)
	if err != nil {
		return "", err
	}
	if o.InvoiceURL != "" {
		return o.InvoiceURL, nil
	}

	url, err := e.invoices.InvoiceFor(ctx, o)
	if err != nil {
		e.logger.Warn().Err(err).Str("order_id", orderID).Msg("invoice retry failed")
		return "", fmt.Errorf("%w: %s", model.ErrSideEffectFailed, err)
	}

	err = e.store.Apply(ctx, customerID, func(record *model.CustomerRecord) error {
		stored := record.FindOrder(orderID)
		if stored == nil {
			return model.ErrNotFound
		}
		stored.InvoiceURL = url
		return nil
	})
	if err != nil {
		return "", err
	}

	return url, nil
}
