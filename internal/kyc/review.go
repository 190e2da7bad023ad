// Package kyc implements the administrator side of identity verification.
// Approval is the one place an administrator deliberately crosses into
// customer-owned fields: it consumes the deferred checkout and clears the
// cart, so the whole decision runs inside a single locked document
// transaction.
package kyc

import (
	"context"
	"time"

	"rent-kart/internal/invoice"
	"rent-kart/internal/model"
	"rent-kart/internal/notify"
	"rent-kart/internal/order"
	"rent-kart/internal/store"

	"github.com/rs/zerolog"
)

// Reviewer applies administrator verification decisions.
type Reviewer struct {
	store    store.RecordStore
	invoices *invoice.Service
	notifier *notify.Notifier
	logger   zerolog.Logger
}

// NewReviewer creates a KYC reviewer.
func NewReviewer(recordStore store.RecordStore, invoices *invoice.Service, notifier *notify.Notifier, logger zerolog.Logger) *Reviewer {
	return &Reviewer{
		store:    recordStore,
		invoices: invoices,
		notifier: notifier,
		logger:   logger.With().Str("component", "kyc-reviewer").Logger(),
	}
}

// Review applies a verification decision. decision must be approved,
// rejected, or reupload_required; a reason accompanies the latter two.
//
// Approval is a conditional, at-most-once materialization: inside one
// locked transaction it stamps the verification time and, if a
// PendingCheckout is present, converts it into a placed order and clears
// both the pending slot and the cart. A second concurrent approval sees
// the cleared slot and is a pure status change. Rejection records the
// reason and leaves any PendingCheckout in place for a later retry.
func (r *Reviewer) Review(ctx context.Context, customerID string, decision model.KYCStatus, reason string) (*model.Order, error) {
	switch decision {
	case model.KYCApproved, model.KYCRejected, model.KYCReuploadRequired:
	default:
		return nil, model.ErrInvalidTransition
	}

	var materialized *model.Order
	err := r.store.Apply(ctx, customerID, func(record *model.CustomerRecord) error {
		// Reviewing an unsubmitted record is a mistake. Re-reviewing an
		// already decided one is allowed; a second approval is a pure
		// status change because the pending slot is already cleared.
		if record.KYC.Status == model.KYCNotSubmitted {
			return model.ErrInvalidTransition
		}

		now := time.Now()
		record.KYC.Status = decision

		if decision != model.KYCApproved {
			record.KYC.RejectionReason = reason
			return nil
		}

		record.KYC.VerifiedAt = &now
		record.KYC.RejectionReason = ""

		if record.PendingCheckout == nil {
			return nil
		}

		pc := record.PendingCheckout
		placed := order.New(customerID, pc.Items, pc.Total, pc.Address, pc.PaymentMethod, pc.Delivery, pc.Rental, now)
		record.Orders = append(record.Orders, *placed)
		record.PendingCheckout = nil
		record.Cart = nil
		materialized = placed
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("customer_id", customerID).
		Str("decision", string(decision)).
		Bool("materialized", materialized != nil).
		Msg("KYC reviewed")

	if materialized != nil {
		r.attachInvoice(ctx, customerID, materialized)
	}

	r.notifier.Notify(ctx, notify.Event{
		Type:       notify.EventKYCReviewed,
		CustomerID: customerID,
		Detail:     string(decision),
	})

	return materialized, nil
}

// attachInvoice generates the artifacts for a just-materialized order.
// Best-effort, exactly as at direct placement.
func (r *Reviewer) attachInvoice(ctx context.Context, customerID string, placed *model.Order) {
	invoiceURL, err := r.invoices.InvoiceFor(ctx, placed)
	if err != nil {
		r.logger.Warn().Err(err).Str("order_id", placed.ID).Msg("invoice generation failed for materialized order")
	}

	agreementURL := ""
	if placed.IsRental() {
		agreementURL, err = r.invoices.AgreementFor(ctx, placed)
		if err != nil {
			r.logger.Warn().Err(err).Str("order_id", placed.ID).Msg("agreement generation failed for materialized order")
		}
	}

	if invoiceURL == "" && agreementURL == "" {
		return
	}

	err = r.store.Apply(ctx, customerID, func(record *model.CustomerRecord) error {
		stored := record.FindOrder(placed.ID)
		if stored == nil {
			return model.ErrNotFound
		}
		if invoiceURL != "" {
			stored.InvoiceURL = invoiceURL
		}
		if agreementURL != "" {
			stored.AgreementURL = agreementURL
		}
		return nil
	})
	if err != nil {
		r.logger.Warn().Err(err).Str("order_id", placed.ID).Msg("failed to attach artifacts to materialized order")
		return
	}

	placed.InvoiceURL = invoiceURL
	placed.AgreementURL = agreementURL
}
