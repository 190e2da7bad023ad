// Package notify drafts customer notifications for order and verification
// events. Drafting is delegated to a content-generator collaborator;
// failures are swallowed and logged, never surfaced to the customer.
package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// EventType tags what happened.
type EventType string

const (
	EventOrderPlaced  EventType = "order_placed"
	EventOrderUpdated EventType = "order_updated"
	EventKYCSubmitted EventType = "kyc_submitted"
	EventKYCReviewed  EventType = "kyc_reviewed"
)

// Event is the context handed to the content generator.
type Event struct {
	Type       EventType
	CustomerID string
	OrderID    string
	Detail     string
}

// Drafter generates the notification text for an event.
type Drafter interface {
	Draft(ctx context.Context, event Event) (string, error)
}

// Notifier drafts and dispatches notifications, best-effort.
type Notifier struct {
	drafter Drafter
	logger  zerolog.Logger
}

// New creates a notifier.
func New(drafter Drafter, logger zerolog.Logger) *Notifier {
	return &Notifier{
		drafter: drafter,
		logger:  logger.With().Str("component", "notify").Logger(),
	}
}

// Notify drafts and dispatches the notification. Errors never propagate;
// the owning record simply lacks the notification until a later event.
func (n *Notifier) Notify(ctx context.Context, event Event) {
	text, err := n.drafter.Draft(ctx, event)
	if err != nil {
		n.logger.Warn().
			Err(err).
			Str("event", string(event.Type)).
			Str("customer_id", event.CustomerID).
			Msg("notification draft failed")
		return
	}

	// Dispatch is a log line here; a mail/push collaborator slots in
	// behind the same call.
	n.logger.Info().
		Str("event", string(event.Type)).
		Str("customer_id", event.CustomerID).
		Str("order_id", event.OrderID).
		Str("text", text).
		Msg("notification dispatched")
}
