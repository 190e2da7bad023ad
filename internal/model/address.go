package model

// Address is a customer delivery address. Many-to-one with customer.
type Address struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Line      string `json:"line"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
	Phone     string `json:"phone"`
	Recipient string `json:"recipient"`
	Default   bool   `json:"default"`
}
