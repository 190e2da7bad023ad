package model

import "time"

// Record field names used for partial writes through the record store.
// Cart/address/KYC-submission fields are customer-written; order-status and
// KYC-review fields are administrator-written. Field-level writes keep the
// two actors from clobbering each other at the whole-record level.
const (
	FieldCart            = "cart"
	FieldOrders          = "orders"
	FieldAddresses       = "addresses"
	FieldKYC             = "kyc"
	FieldPendingCheckout = "pendingCheckout"
	FieldWishlist        = "wishlist"
	FieldTickets         = "tickets"
)

// SupportTicket is a customer support request attached to the record.
type SupportTicket struct {
	ID        string    `json:"id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// CustomerRecord is the single authoritative document for one customer.
// The customer's client holds an optimistic in-memory mirror of it; the
// admin console subscribes to the whole collection.
type CustomerRecord struct {
	ID              string           `json:"id"`
	Email           string           `json:"email"`
	Name            string           `json:"name"`
	Cart            []CartItem       `json:"cart"`
	Orders          []Order          `json:"orders"`
	Addresses       []Address        `json:"addresses"`
	KYC             KYCRecord        `json:"kyc"`
	PendingCheckout *PendingCheckout `json:"pendingCheckout,omitempty"`
	Wishlist        []string         `json:"wishlist,omitempty"`
	Tickets         []SupportTicket  `json:"tickets,omitempty"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// NewCustomerRecord returns an empty record for a fresh identity.
func NewCustomerRecord(id, email, name string) *CustomerRecord {
	return &CustomerRecord{
		ID:    id,
		Email: email,
		Name:  name,
		KYC:   KYCRecord{Status: KYCNotSubmitted},
	}
}

// FindOrder returns the order with the given id, or nil.
func (r *CustomerRecord) FindOrder(orderID string) *Order {
	for i := range r.Orders {
		if r.Orders[i].ID == orderID {
			return &r.Orders[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the record. The sync layer hands copies to
// callers so the confirmed layer is never aliased by mutable state.
func (r *CustomerRecord) Clone() *CustomerRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.Cart = append([]CartItem(nil), r.Cart...)
	out.Orders = make([]Order, len(r.Orders))
	for i := range r.Orders {
		o := r.Orders[i]
		o.Items = append([]CartItem(nil), o.Items...)
		o.Notes = append([]string(nil), o.Notes...)
		o.Timeline = append([]TimelineEntry(nil), o.Timeline...)
		if o.Tracking != nil {
			t := *o.Tracking
			o.Tracking = &t
		}
		if o.Rental != nil {
			rd := *o.Rental
			o.Rental = &rd
		}
		out.Orders[i] = o
	}
	out.Addresses = append([]Address(nil), r.Addresses...)
	out.Wishlist = append([]string(nil), r.Wishlist...)
	out.Tickets = append([]SupportTicket(nil), r.Tickets...)
	out.KYC.DocumentRefs = append([]string(nil), r.KYC.DocumentRefs...)
	if r.PendingCheckout != nil {
		pc := *r.PendingCheckout
		pc.Items = append([]CartItem(nil), r.PendingCheckout.Items...)
		if pc.Rental != nil {
			rd := *pc.Rental
			pc.Rental = &rd
		}
		out.PendingCheckout = &pc
	}
	return &out
}
