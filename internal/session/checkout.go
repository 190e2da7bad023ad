package session

import (
	"context"
	"time"

	"rent-kart/internal/model"
	"rent-kart/internal/notify"
	"rent-kart/internal/order"
)

// CheckoutRequest carries the customer's checkout choices.
type CheckoutRequest struct {
	Address       string               `json:"address"`
	PaymentMethod string               `json:"paymentMethod"`
	Delivery      model.DeliveryMethod `json:"delivery"`
	Rental        *model.RentalDetails `json:"rental,omitempty"`
}

// CheckoutResult is either a placed order, or a signal that the checkout
// was deferred behind identity verification.
type CheckoutResult struct {
	Order                *model.Order `json:"order,omitempty"`
	VerificationRequired bool         `json:"verificationRequired"`
}

// Checkout turns the cart into an order. A cart containing a rental item
// checks out directly only when the customer's KYC status is approved;
// otherwise the checkout is snapshotted into the single PendingCheckout
// slot (overwriting any previous one), the cart is left untouched, and
// the caller is routed to the verification flow. Approval later
// materializes the snapshot into an order.
func (s *Session) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	record := s.Record()
	if len(record.Cart) == 0 {
		return nil, model.ErrEmptyCart
	}

	total := model.CartTotal(record.Cart)

	if model.HasRentalItem(record.Cart) && record.KYC.Status != model.KYCApproved {
		pending := &model.PendingCheckout{
			Items:         append([]model.CartItem(nil), record.Cart...),
			Total:         total,
			Address:       req.Address,
			PaymentMethod: req.PaymentMethod,
			Delivery:      req.Delivery,
			Rental:        req.Rental,
			CreatedAt:     time.Now(),
		}

		err := s.mutate(ctx, model.FieldPendingCheckout, func(record *model.CustomerRecord) {
			record.PendingCheckout = pending
		})
		if err != nil {
			return nil, err
		}

		s.logger.Info().Float64("total", total).Msg("checkout deferred pending identity verification")
		return &CheckoutResult{VerificationRequired: true}, nil
	}

	placed, err := s.placeOrder(ctx, record.Cart, total, req)
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{Order: placed}, nil
}

// placeOrder creates the order from the cart snapshot and clears the cart
// as one logical update. Invoice generation is attempted first and is
// non-fatal: a missing artifact reference is retried later on demand,
// never a reason to fail placement.
func (s *Session) placeOrder(ctx context.Context, items []model.CartItem, total float64, req CheckoutRequest) (*model.Order, error) {
	placed := order.New(s.customerID, items, total, req.Address, req.PaymentMethod, req.Delivery, req.Rental, time.Now())

	if url, err := s.invoices.InvoiceFor(ctx, placed); err != nil {
		s.logger.Warn().Err(err).Str("order_id", placed.ID).Msg("invoice generation failed, placing order without artifact")
	} else {
		placed.InvoiceURL = url
	}
	if placed.IsRental() {
		if url, err := s.invoices.AgreementFor(ctx, placed); err != nil {
			s.logger.Warn().Err(err).Str("order_id", placed.ID).Msg("agreement generation failed")
		} else {
			placed.AgreementURL = url
		}
	}

	err := s.store.Apply(ctx, s.customerID, func(record *model.CustomerRecord) error {
		record.Orders = append(record.Orders, *placed)
		record.Cart = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The authoritative copy carries the order now; fold it into the
	// confirmed layer without waiting for the subscription round-trip.
	// The snapshot may already have landed, so the append is conditional.
	s.applyConfirmed(func(record *model.CustomerRecord) {
		if record.FindOrder(placed.ID) == nil {
			record.Orders = append(record.Orders, *placed)
		}
		record.Cart = nil
	})

	s.logger.Info().
		Str("order_id", placed.ID).
		Float64("total", total).
		Int("items", len(placed.Items)).
		Msg("order placed")

	s.notifier.Notify(ctx, notify.Event{
		Type:       notify.EventOrderPlaced,
		CustomerID: s.customerID,
		OrderID:    placed.ID,
	})

	return placed, nil
}
