package model

import "time"

// PendingCheckout is a deferred checkout snapshot stored when a rental
// checkout is blocked by identity verification. At most one exists per
// customer; a new checkout attempt overwrites any previous one. It is
// consumed exactly once, on KYC approval, when it is materialized into an
// Order and cleared in the same operation.
type PendingCheckout struct {
	Items         []CartItem     `json:"items"`
	Total         float64        `json:"total"`
	Address       string         `json:"address"`
	PaymentMethod string         `json:"paymentMethod"`
	Delivery      DeliveryMethod `json:"delivery"`
	Rental        *RentalDetails `json:"rental,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}
