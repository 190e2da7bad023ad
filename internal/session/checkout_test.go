package session

import (
	"context"
	"testing"

	"rent-kart/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutRequest() CheckoutRequest {
	return CheckoutRequest{
		Address:       "221B Baker Street, London",
		PaymentMethod: "card",
		Delivery:      model.DeliveryCourier,
	}
}

func TestCheckout_EmptyCartRejectedWithoutWrite(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.session.Checkout(ctx, checkoutRequest())
	assert.ErrorIs(t, err, model.ErrEmptyCart)

	remote, err := f.store.GetRecord(ctx, "cust-1")
	require.NoError(t, err)
	assert.Empty(t, remote.Orders)
	assert.Nil(t, remote.PendingCheckout)
}

func TestCheckout_PurchasePlacesImmediately(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.session.AddItem(ctx, "prod-monitor", model.ModeBuy, 0, "", nil)
	require.NoError(t, err)

	result, err := f.session.Checkout(ctx, checkoutRequest())
	require.NoError(t, err)
	assert.False(t, result.VerificationRequired)
	require.NotNil(t, result.Order)

	assert.Equal(t, model.StatusPlaced, result.Order.Status)
	assert.Equal(t, 550.0, result.Order.Total)
	assert.Nil(t, result.Order.Rental)
	assert.NotEmpty(t, result.Order.InvoiceURL)
	assert.Empty(t, result.Order.AgreementURL)

	// Cart cleared and exactly one order present, locally and remotely.
	local := f.session.Record()
	assert.Empty(t, local.Cart)
	require.Len(t, local.Orders, 1)
	remote, err := f.store.GetRecord(ctx, "cust-1")
	require.NoError(t, err)
	assert.Empty(t, remote.Cart)
	require.Len(t, remote.Orders, 1)
	assert.Equal(t, result.Order.ID, remote.Orders[0].ID)
}

func TestCheckout_RentalWithoutApprovalDefers(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.session.AddItem(ctx, "prod-laptop", model.ModeRent, 12, "", nil)
	require.NoError(t, err)

	result, err := f.session.Checkout(ctx, checkoutRequest())
	require.NoError(t, err)
	assert.True(t, result.VerificationRequired)
	assert.Nil(t, result.Order)

	// Deferral must not consume the cart.
	record := f.session.Record()
	require.Len(t, record.Cart, 1)
	assert.Empty(t, record.Orders)

	remote, err := f.store.GetRecord(ctx, "cust-1")
	require.NoError(t, err)
	require.NotNil(t, remote.PendingCheckout)
	assert.Equal(t, 320.0, remote.PendingCheckout.Total)
	require.Len(t, remote.PendingCheckout.Items, 1)
	assert.Len(t, remote.Cart, 1)
	assert.Empty(t, remote.Orders)
}

func TestCheckout_DeferralOverwritesPreviousSnapshot(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.session.AddItem(ctx, "prod-laptop", model.ModeRent, 12, "", nil)
	require.NoError(t, err)

	first := checkoutRequest()
	_, err = f.session.Checkout(ctx, first)
	require.NoError(t, err)

	_, err = f.session.AddItem(ctx, "prod-monitor", model.ModeBuy, 0, "", nil)
	require.NoError(t, err)

	second := checkoutRequest()
	second.Address = "742 Evergreen Terrace"
	_, err = f.session.Checkout(ctx, second)
	require.NoError(t, err)

	remote, err := f.store.GetRecord(ctx, "cust-1")
	require.NoError(t, err)
	require.NotNil(t, remote.PendingCheckout)
	assert.Equal(t, "742 Evergreen Terrace", remote.PendingCheckout.Address)
	assert.Len(t, remote.PendingCheckout.Items, 2)
}

func TestCheckout_ApprovedRentalPlacesDirectly(t *testing.T) {
	seed := model.NewCustomerRecord("cust-1", "jo@example.com", "Jo")
	seed.KYC.Status = model.KYCApproved
	f := newFixture(t, seed)
	ctx := context.Background()

	_, err := f.session.AddItem(ctx, "prod-laptop", model.ModeRent, 12, "", nil)
	require.NoError(t, err)

	req := checkoutRequest()
	req.Rental = &model.RentalDetails{DepositAmount: 500}
	result, err := f.session.Checkout(ctx, req)
	require.NoError(t, err)
	assert.False(t, result.VerificationRequired)
	require.NotNil(t, result.Order)

	assert.True(t, result.Order.IsRental())
	require.NotNil(t, result.Order.Rental)
	assert.Equal(t, 500.0, result.Order.Rental.DepositAmount)
	assert.NotEmpty(t, result.Order.InvoiceURL)
	assert.NotEmpty(t, result.Order.AgreementURL)

	remote, err := f.store.GetRecord(ctx, "cust-1")
	require.NoError(t, err)
	assert.Nil(t, remote.PendingCheckout)
	assert.Empty(t, remote.Cart)
	require.Len(t, remote.Orders, 1)
}

func TestCheckout_MixedCartGatedByRentalItem(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.session.AddItem(ctx, "prod-monitor", model.ModeBuy, 0, "", nil)
	require.NoError(t, err)
	_, err = f.session.AddItem(ctx, "prod-laptop", model.ModeRent, 6, "", nil)
	require.NoError(t, err)

	result, err := f.session.Checkout(ctx, checkoutRequest())
	require.NoError(t, err)
	assert.True(t, result.VerificationRequired, "one rental item gates the whole cart")
}

func TestCheckout_DeferralWriteFailureSurfacesRetryable(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.session.AddItem(ctx, "prod-laptop", model.ModeRent, 12, "", nil)
	require.NoError(t, err)

	f.store.SetFailWrites(true)
	_, err = f.session.Checkout(ctx, checkoutRequest())
	assert.ErrorIs(t, err, model.ErrRemoteWriteFailed)
	f.store.SetFailWrites(false)

	// The deferred snapshot is still pending locally; Retry lands it.
	require.NoError(t, f.session.Retry(ctx))
	remote, err := f.store.GetRecord(ctx, "cust-1")
	require.NoError(t, err)
	assert.NotNil(t, remote.PendingCheckout)
}
