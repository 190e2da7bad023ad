package session

import (
	"context"
	"fmt"

	"rent-kart/internal/model"
)

// Record returns the customer's current view: the confirmed remote
// snapshot with all pending intents re-applied on top.
func (s *Session) Record() *model.CustomerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() *model.CustomerRecord {
	view := s.confirmed.Clone()
	for _, in := range s.intents {
		in.apply(view)
	}
	return view
}

// mutate applies a local mutation optimistically and pushes the affected
// field to the remote store. On push failure the intent is kept, so the
// view still shows what the customer did, and a retryable error is
// returned; the intent re-applies over incoming snapshots and is flushed
// by Retry.
func (s *Session) mutate(ctx context.Context, field string, apply func(record *model.CustomerRecord)) error {
	s.mu.Lock()
	in := intent{field: field, apply: apply}
	s.intents = append(s.intents, in)
	view := s.viewLocked()
	s.mu.Unlock()

	value := fieldValue(view, field)
	if err := s.store.WriteFields(ctx, s.customerID, map[string]any{field: value}); err != nil {
		s.logger.Warn().Err(err).Str("field", field).Msg("remote write failed, keeping optimistic state")
		return fmt.Errorf("%w: %s", model.ErrRemoteWriteFailed, err)
	}

	s.confirm(field, view)
	return nil
}

// confirm folds a successfully written field into the confirmed layer and
// drops the intents it covered.
func (s *Session) confirm(field string, view *model.CustomerRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	setField(s.confirmed, field, view)

	kept := s.intents[:0]
	for _, in := range s.intents {
		if in.field != field {
			kept = append(kept, in)
		}
	}
	s.intents = kept
}

// Retry re-pushes every pending intent. Called after a surfaced
// REMOTE_WRITE_FAILED once the store is reachable again.
func (s *Session) Retry(ctx context.Context) error {
	s.mu.Lock()
	fields := make([]string, 0, len(s.intents))
	seen := make(map[string]bool)
	for _, in := range s.intents {
		if !seen[in.field] {
			seen[in.field] = true
			fields = append(fields, in.field)
		}
	}
	view := s.viewLocked()
	s.mu.Unlock()

	for _, field := range fields {
		if err := s.store.WriteFields(ctx, s.customerID, map[string]any{field: fieldValue(view, field)}); err != nil {
			return fmt.Errorf("%w: %s", model.ErrRemoteWriteFailed, err)
		}
		s.confirm(field, view)
	}
	return nil
}

// onSnapshot receives remote-origin changes: the snapshot replaces the
// confirmed layer wholesale, and any still-pending intents re-apply on
// top of it at the next read. This is where an administrator's write to
// the same record (order status, KYC review, materialized checkout)
// reaches the customer's view.
func (s *Session) onSnapshot(record *model.CustomerRecord) {
	s.mu.Lock()
	s.confirmed = record
	pending := len(s.intents)
	s.mu.Unlock()

	s.logger.Debug().Int("pending_intents", pending).Msg("remote snapshot applied")
}

// applyConfirmed folds a mutation straight into the confirmed layer after
// the owning write committed through Apply (the authoritative copy already
// carries it).
func (s *Session) applyConfirmed(apply func(record *model.CustomerRecord)) {
	s.mu.Lock()
	apply(s.confirmed)
	s.mu.Unlock()
}

func fieldValue(record *model.CustomerRecord, field string) any {
	switch field {
	case model.FieldCart:
		return record.Cart
	case model.FieldOrders:
		return record.Orders
	case model.FieldAddresses:
		return record.Addresses
	case model.FieldKYC:
		return record.KYC
	case model.FieldPendingCheckout:
		return record.PendingCheckout
	case model.FieldWishlist:
		return record.Wishlist
	case model.FieldTickets:
		return record.Tickets
	}
	return nil
}

func setField(record *model.CustomerRecord, field string, from *model.CustomerRecord) {
	switch field {
	case model.FieldCart:
		record.Cart = from.Cart
	case model.FieldOrders:
		record.Orders = from.Orders
	case model.FieldAddresses:
		record.Addresses = from.Addresses
	case model.FieldKYC:
		record.KYC = from.KYC
	case model.FieldPendingCheckout:
		record.PendingCheckout = from.PendingCheckout
	case model.FieldWishlist:
		record.Wishlist = from.Wishlist
	case model.FieldTickets:
		record.Tickets = from.Tickets
	}
}
