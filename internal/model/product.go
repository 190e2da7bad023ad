package model

import "time"

// AvailabilityMode describes how a product can be acquired.
type AvailabilityMode string

const (
	AvailabilityRent AvailabilityMode = "rent"
	AvailabilityBuy  AvailabilityMode = "buy"
	AvailabilityBoth AvailabilityMode = "both"
)

// RentalOption is a tenure tier in a product's rental price table.
type RentalOption struct {
	TenureMonths int     `json:"tenureMonths" db:"tenure_months"`
	MonthlyPrice float64 `json:"monthlyPrice" db:"monthly_price"`
}

// Product represents a hardware device in the catalogue. Products are
// owned by catalogue management; the orchestration layer treats them as
// read-only.
type Product struct {
	ID            string           `json:"id" db:"id"`
	Name          string           `json:"name" db:"name"`
	Category      string           `json:"category" db:"category"`
	BasePrice     float64          `json:"basePrice" db:"base_price"`
	PurchasePrice *float64         `json:"purchasePrice,omitempty" db:"purchase_price"`
	RentalOptions []RentalOption   `json:"rentalOptions,omitempty" db:"rental_options"`
	Availability  AvailabilityMode `json:"availability" db:"availability"`
	CreatedAt     time.Time        `json:"createdAt" db:"created_at"`
}

// Rentable reports whether the product can be added to the cart in rent mode.
func (p *Product) Rentable() bool {
	return p.Availability == AvailabilityRent || p.Availability == AvailabilityBoth
}

// Buyable reports whether the product can be added to the cart in buy mode.
func (p *Product) Buyable() bool {
	return p.Availability == AvailabilityBuy || p.Availability == AvailabilityBoth
}
