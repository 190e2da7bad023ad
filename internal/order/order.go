// Package order owns the order lifecycle: constructing an order from a
// cart snapshot, the status state machine, and the administrative engine
// that advances orders across all customers.
package order

import (
	"time"

	"rent-kart/internal/model"

	"github.com/google/uuid"
)

// New builds a freshly placed order from a cart snapshot. Items are copied
// so later cart mutations cannot reach into the order; prices are already
// frozen on the items. A snapshot without rental lines never carries
// rental details, whatever the caller passed.
func New(customerID string, items []model.CartItem, total float64, address, paymentMethod string, delivery model.DeliveryMethod, rental *model.RentalDetails, now time.Time) *model.Order {
	snapshot := append([]model.CartItem(nil), items...)

	if !model.HasRentalItem(snapshot) {
		rental = nil
	} else if rental != nil {
		r := *rental
		rental = &r
	}

	return &model.Order{
		ID:            uuid.NewString(),
		CustomerID:    customerID,
		Items:         snapshot,
		Total:         total,
		Address:       address,
		PaymentMethod: paymentMethod,
		Delivery:      delivery,
		Rental:        rental,
		Status:        model.StatusPlaced,
		Timeline: []model.TimelineEntry{
			{Status: model.StatusPlaced, Timestamp: now},
		},
		CreatedAt: now,
	}
}
