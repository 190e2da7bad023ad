package session

import (
	"context"
	"time"

	"rent-kart/internal/model"

	"github.com/google/uuid"
)

// AddAddress stores a delivery address on the customer record. The first
// address becomes the default; marking a later one default clears the flag
// elsewhere.
func (s *Session) AddAddress(ctx context.Context, addr model.Address) (*model.Address, error) {
	addr.ID = uuid.NewString()

	err := s.mutate(ctx, model.FieldAddresses, func(record *model.CustomerRecord) {
		if len(record.Addresses) == 0 {
			addr.Default = true
		}
		if addr.Default {
			for i := range record.Addresses {
				record.Addresses[i].Default = false
			}
		}
		record.Addresses = append(record.Addresses, addr)
	})
	if err != nil {
		return nil, err
	}

	return &addr, nil
}

// RemoveAddress deletes an address by id.
func (s *Session) RemoveAddress(ctx context.Context, addressID string) error {
	record := s.Record()
	found := false
	for i := range record.Addresses {
		if record.Addresses[i].ID == addressID {
			found = true
			break
		}
	}
	if !found {
		return model.ErrNotFound
	}

	return s.mutate(ctx, model.FieldAddresses, func(record *model.CustomerRecord) {
		kept := record.Addresses[:0]
		for _, a := range record.Addresses {
			if a.ID != addressID {
				kept = append(kept, a)
			}
		}
		record.Addresses = kept
	})
}

// ToggleWishlist adds the product to the wishlist, or removes it if
// already present.
func (s *Session) ToggleWishlist(ctx context.Context, productID string) error {
	return s.mutate(ctx, model.FieldWishlist, func(record *model.CustomerRecord) {
		for i, id := range record.Wishlist {
			if id == productID {
				record.Wishlist = append(record.Wishlist[:i], record.Wishlist[i+1:]...)
				return
			}
		}
		record.Wishlist = append(record.Wishlist, productID)
	})
}

// OpenTicket files a support ticket on the customer record.
func (s *Session) OpenTicket(ctx context.Context, subject, message string) (*model.SupportTicket, error) {
	ticket := model.SupportTicket{
		ID:        uuid.NewString(),
		Subject:   subject,
		Message:   message,
		Status:    "open",
		CreatedAt: time.Now(),
	}

	err := s.mutate(ctx, model.FieldTickets, func(record *model.CustomerRecord) {
		record.Tickets = append(record.Tickets, ticket)
	})
	if err != nil {
		return nil, err
	}

	return &ticket, nil
}
