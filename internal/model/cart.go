package model

import "time"

// AcquisitionMode is how a single cart item is being acquired.
type AcquisitionMode string

const (
	ModeRent AcquisitionMode = "rent"
	ModeBuy  AcquisitionMode = "buy"
)

// WarrantyAddon is an optional add-on attached to a cart item.
type WarrantyAddon struct {
	ID    string  `json:"id"`
	Label string  `json:"label"`
	Price float64 `json:"price"`
}

// CartItem is a single selected item in the customer's cart. UnitPrice is
// resolved once when the item is added and never re-derived from the
// catalogue afterwards. TenureMonths is set iff Mode is rent.
type CartItem struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	Mode         AcquisitionMode `json:"mode"`
	UnitPrice    float64         `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
	TenureMonths int             `json:"tenureMonths,omitempty"`
	Variant      string          `json:"variant,omitempty"`
	Addon        *WarrantyAddon  `json:"addon,omitempty"`
	AddedAt      time.Time       `json:"addedAt"`
}

// LineTotal returns the charged amount for this line. Value receiver so
// templates can call it on ranged items.
func (i CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// CartTotal sums the line totals of the given items.
func CartTotal(items []CartItem) float64 {
	var total float64
	for i := range items {
		total += items[i].LineTotal()
	}
	return total
}

// HasRentalItem reports whether any of the items is in rent mode.
func HasRentalItem(items []CartItem) bool {
	for i := range items {
		if items[i].Mode == ModeRent {
			return true
		}
	}
	return false
}
