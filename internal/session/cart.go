package session

import (
	"context"
	"time"

	"rent-kart/internal/model"
	"rent-kart/internal/pricing"

	"github.com/google/uuid"
)

// AddItem adds a product to the cart. The unit price is resolved once,
// here, and frozen onto the item; later catalogue changes never touch it.
// Tenure is carried iff the item is rented.
func (s *Session) AddItem(ctx context.Context, productID string, mode model.AcquisitionMode, tenureMonths int, variant string, addon *model.WarrantyAddon) (*model.CartItem, error) {
	product, err := s.catalog.Get(productID)
	if err != nil {
		return nil, err
	}

	switch mode {
	case model.ModeRent:
		if !product.Rentable() {
			return nil, model.ErrInvalidMode
		}
		tenureMonths = pricing.ResolveTenure(product, tenureMonths)
	case model.ModeBuy:
		if !product.Buyable() {
			return nil, model.ErrInvalidMode
		}
		tenureMonths = 0
	default:
		return nil, model.ErrInvalidMode
	}

	item := model.CartItem{
		ID:           uuid.NewString(),
		ProductID:    product.ID,
		ProductName:  product.Name,
		Mode:         mode,
		UnitPrice:    pricing.PriceItem(product, mode, tenureMonths, addon),
		Quantity:     1,
		TenureMonths: tenureMonths,
		Variant:      variant,
		Addon:        addon,
		AddedAt:      time.Now(),
	}

	err = s.mutate(ctx, model.FieldCart, func(record *model.CustomerRecord) {
		record.Cart = append(record.Cart, item)
	})
	if err != nil {
		return &item, err
	}

	s.logger.Debug().
		Str("product_id", product.ID).
		Str("mode", string(mode)).
		Float64("unit_price", item.UnitPrice).
		Msg("item added to cart")

	return &item, nil
}

// SetQuantity adjusts an item's quantity by delta, clamped to a minimum
// of 1. Decrementing past 1 never removes the item; removal is explicit.
func (s *Session) SetQuantity(ctx context.Context, itemID string, delta int) error {
	if !s.cartHas(itemID) {
		return model.ErrNotFound
	}

	return s.mutate(ctx, model.FieldCart, func(record *model.CustomerRecord) {
		for i := range record.Cart {
			if record.Cart[i].ID == itemID {
				q := record.Cart[i].Quantity + delta
				if q < 1 {
					q = 1
				}
				record.Cart[i].Quantity = q
				return
			}
		}
	})
}

// SetTenure changes a rental item's tenure. The new tenure is a fresh
// selection, so the unit price re-resolves against the current rental
// table; items in other modes are rejected.
func (s *Session) SetTenure(ctx context.Context, itemID string, tenureMonths int) error {
	view := s.Record()
	var target *model.CartItem
	for i := range view.Cart {
		if view.Cart[i].ID == itemID {
			target = &view.Cart[i]
			break
		}
	}
	if target == nil {
		return model.ErrNotFound
	}
	if target.Mode != model.ModeRent {
		return model.ErrInvalidMode
	}

	product, err := s.catalog.Get(target.ProductID)
	if err != nil {
		return err
	}

	resolved := pricing.ResolveTenure(product, tenureMonths)
	price := pricing.PriceItem(product, model.ModeRent, resolved, target.Addon)

	return s.mutate(ctx, model.FieldCart, func(record *model.CustomerRecord) {
		for i := range record.Cart {
			if record.Cart[i].ID == itemID {
				record.Cart[i].TenureMonths = resolved
				record.Cart[i].UnitPrice = price
				return
			}
		}
	})
}

// RemoveItem removes an item from the cart.
func (s *Session) RemoveItem(ctx context.Context, itemID string) error {
	if !s.cartHas(itemID) {
		return model.ErrNotFound
	}

	return s.mutate(ctx, model.FieldCart, func(record *model.CustomerRecord) {
		kept := record.Cart[:0]
		for _, item := range record.Cart {
			if item.ID != itemID {
				kept = append(kept, item)
			}
		}
		record.Cart = kept
	})
}

// Clear empties the cart.
func (s *Session) Clear(ctx context.Context) error {
	return s.mutate(ctx, model.FieldCart, func(record *model.CustomerRecord) {
		record.Cart = nil
	})
}

func (s *Session) cartHas(itemID string) bool {
	record := s.Record()
	for i := range record.Cart {
		if record.Cart[i].ID == itemID {
			return true
		}
	}
	return false
}
