package model

import "time"

// OrderStatus is a stage in the order lifecycle.
type OrderStatus string

const (
	StatusPlaced          OrderStatus = "Placed"
	StatusProcessing      OrderStatus = "Processing"
	StatusShipped         OrderStatus = "Shipped"
	StatusDelivered       OrderStatus = "Delivered"
	StatusInUse           OrderStatus = "In Use"
	StatusReturnRequested OrderStatus = "Return Requested"
	StatusReturned        OrderStatus = "Returned"
	StatusCompleted       OrderStatus = "Completed"
	StatusCancelled       OrderStatus = "Cancelled"
)

// DeliveryMethod is how the order reaches the customer.
type DeliveryMethod string

const (
	DeliveryPickup  DeliveryMethod = "pickup"
	DeliveryCourier DeliveryMethod = "delivery"
)

// TimelineEntry records one status transition. The timeline is append-only
// and serves as the audit trail for the order.
type TimelineEntry struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Note      string      `json:"note,omitempty"`
}

// TrackingInfo is the carrier details required to mark an order shipped.
type TrackingInfo struct {
	Carrier        string `json:"carrier"`
	TrackingNumber string `json:"trackingNumber"`
}

// RentalDetails captures the rental window and deposit on a rental order.
type RentalDetails struct {
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	DepositAmount float64   `json:"depositAmount,omitempty"`
}

// Order is a placed order. Items are a snapshot of the cart at placement
// time and are never re-priced. Orders are never deleted; they terminate
// into Completed or Cancelled.
type Order struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customerId"`
	Items         []CartItem      `json:"items"`
	Total         float64         `json:"total"`
	Address       string          `json:"address"`
	PaymentMethod string          `json:"paymentMethod"`
	Delivery      DeliveryMethod  `json:"delivery"`
	Rental        *RentalDetails  `json:"rental,omitempty"`
	Status        OrderStatus     `json:"status"`
	InvoiceURL    string          `json:"invoiceUrl,omitempty"`
	AgreementURL  string          `json:"agreementUrl,omitempty"`
	Tracking      *TrackingInfo   `json:"tracking,omitempty"`
	Notes         []string        `json:"notes,omitempty"`
	Timeline      []TimelineEntry `json:"timeline"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// IsRental reports whether any order line is a rental.
func (o *Order) IsRental() bool {
	return HasRentalItem(o.Items)
}

// Terminal reports whether the order has reached a final state.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}
