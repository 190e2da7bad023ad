package order

import (
	"time"

	"rent-kart/internal/model"
)

// validNext is the order lifecycle. Linear with one branch: rental orders
// pass through In Use / Return Requested / Returned before Completed;
// purchases complete straight from Delivered. Cancelled is reachable from
// any pre-Delivered state.
var validNext = map[model.OrderStatus][]model.OrderStatus{
	model.StatusPlaced:          {model.StatusProcessing, model.StatusCancelled},
	model.StatusProcessing:      {model.StatusShipped, model.StatusCancelled},
	model.StatusShipped:         {model.StatusDelivered, model.StatusCancelled},
	model.StatusDelivered:       {model.StatusInUse, model.StatusReturnRequested, model.StatusCompleted},
	model.StatusInUse:           {model.StatusReturnRequested},
	model.StatusReturnRequested: {model.StatusReturned},
	model.StatusReturned:        {model.StatusCompleted},
	model.StatusCompleted:       {},
	model.StatusCancelled:       {},
}

// rentalOnly marks states only rental orders may enter.
var rentalOnly = map[model.OrderStatus]bool{
	model.StatusInUse:           true,
	model.StatusReturnRequested: true,
	model.StatusReturned:        true,
}

// CanTransition reports whether an order may move from its current status
// to next.
func CanTransition(from, to model.OrderStatus, rental bool) bool {
	if rentalOnly[to] && !rental {
		return false
	}
	for _, allowed := range validNext[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition applies a status change to the order: it validates the move,
// enforces that Shipped carries carrier and tracking number, and appends
// exactly one timeline entry. The timeline is append-only; nothing here
// ever rewrites earlier entries.
func Transition(o *model.Order, next model.OrderStatus, tracking *model.TrackingInfo, note string, now time.Time) error {
	if !CanTransition(o.Status, next, o.IsRental()) {
		return model.ErrInvalidTransition
	}

	if next == model.StatusShipped {
		if tracking == nil || tracking.Carrier == "" || tracking.TrackingNumber == "" {
			return model.ErrInvalidTransition
		}
		t := *tracking
		o.Tracking = &t
	}

	o.Status = next
	o.Timeline = append(o.Timeline, model.TimelineEntry{
		Status:    next,
		Timestamp: now,
		Note:      note,
	})

	return nil
}
