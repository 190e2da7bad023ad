package order

import (
	"testing"
	"time"

	"rent-kart/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buyOrder() *model.Order {
	return New("cust-1", []model.CartItem{
		{ID: "i1", ProductID: "P1", ProductName: "Monitor", Mode: model.ModeBuy, UnitPrice: 500, Quantity: 1},
	}, 500, "12 Baker St", "card", model.DeliveryCourier, nil, time.Now())
}

func rentOrder() *model.Order {
	return New("cust-1", []model.CartItem{
		{ID: "i1", ProductID: "P1", ProductName: "MacBook Pro", Mode: model.ModeRent, UnitPrice: 320, Quantity: 1, TenureMonths: 12},
	}, 320, "12 Baker St", "card", model.DeliveryCourier, &model.RentalDetails{
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(1, 0, 0),
	}, time.Now())
}

func TestNew_StartsPlacedWithTimeline(t *testing.T) {
	o := buyOrder()
	assert.Equal(t, model.StatusPlaced, o.Status)
	require.Len(t, o.Timeline, 1)
	assert.Equal(t, model.StatusPlaced, o.Timeline[0].Status)
}

func TestNew_BuyOnlyNeverCarriesRentalDetails(t *testing.T) {
	o := New("cust-1", []model.CartItem{
		{ID: "i1", Mode: model.ModeBuy, UnitPrice: 500, Quantity: 1},
	}, 500, "addr", "card", model.DeliveryPickup, &model.RentalDetails{
		StartDate:     time.Now(),
		DepositAmount: 100,
	}, time.Now())

	assert.Nil(t, o.Rental)
}

func TestNew_SnapshotsItems(t *testing.T) {
	items := []model.CartItem{{ID: "i1", Mode: model.ModeBuy, UnitPrice: 10, Quantity: 1}}
	o := New("cust-1", items, 10, "addr", "card", model.DeliveryPickup, nil, time.Now())

	items[0].Quantity = 99
	assert.Equal(t, 1, o.Items[0].Quantity)
}

func TestTransition_HappyPathPurchase(t *testing.T) {
	o := buyOrder()
	now := time.Now()

	require.NoError(t, Transition(o, model.StatusProcessing, nil, "", now))
	require.NoError(t, Transition(o, model.StatusShipped, &model.TrackingInfo{Carrier: "DHL", TrackingNumber: "T1"}, "", now))
	require.NoError(t, Transition(o, model.StatusDelivered, nil, "", now))
	require.NoError(t, Transition(o, model.StatusCompleted, nil, "", now))

	assert.Equal(t, model.StatusCompleted, o.Status)
	assert.Len(t, o.Timeline, 5)
}

func TestTransition_HappyPathRental(t *testing.T) {
	o := rentOrder()
	now := time.Now()

	for _, next := range []model.OrderStatus{
		model.StatusProcessing, model.StatusShipped, model.StatusDelivered,
		model.StatusInUse, model.StatusReturnRequested, model.StatusReturned, model.StatusCompleted,
	} {
		var tracking *model.TrackingInfo
		if next == model.StatusShipped {
			tracking = &model.TrackingInfo{Carrier: "DHL", TrackingNumber: "T1"}
		}
		require.NoError(t, Transition(o, next, tracking, "", now), "transition to %s", next)
	}

	assert.Equal(t, model.StatusCompleted, o.Status)
}

func TestTransition_ShippedRequiresTracking(t *testing.T) {
	o := buyOrder()
	now := time.Now()
	require.NoError(t, Transition(o, model.StatusProcessing, nil, "", now))

	err := Transition(o, model.StatusShipped, nil, "", now)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	err = Transition(o, model.StatusShipped, &model.TrackingInfo{Carrier: "DHL"}, "", now)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)

	// Rejected transitions must not leave timeline entries behind.
	assert.Len(t, o.Timeline, 2)

	require.NoError(t, Transition(o, model.StatusShipped, &model.TrackingInfo{Carrier: "DHL", TrackingNumber: "T1"}, "", now))
	assert.Len(t, o.Timeline, 3)
	assert.Equal(t, "T1", o.Tracking.TrackingNumber)
}

func TestTransition_RentalStatesRejectedForPurchases(t *testing.T) {
	o := buyOrder()
	now := time.Now()
	require.NoError(t, Transition(o, model.StatusProcessing, nil, "", now))
	require.NoError(t, Transition(o, model.StatusShipped, &model.TrackingInfo{Carrier: "DHL", TrackingNumber: "T1"}, "", now))
	require.NoError(t, Transition(o, model.StatusDelivered, nil, "", now))

	assert.ErrorIs(t, Transition(o, model.StatusInUse, nil, "", now), model.ErrInvalidTransition)
	assert.ErrorIs(t, Transition(o, model.StatusReturnRequested, nil, "", now), model.ErrInvalidTransition)
}

func TestTransition_CancelReachability(t *testing.T) {
	now := time.Now()

	// Cancellable pre-Delivered.
	o := buyOrder()
	require.NoError(t, Transition(o, model.StatusProcessing, nil, "", now))
	require.NoError(t, Transition(o, model.StatusCancelled, nil, "cancelled by admin", now))

	// Not cancellable once Delivered.
	o = buyOrder()
	require.NoError(t, Transition(o, model.StatusProcessing, nil, "", now))
	require.NoError(t, Transition(o, model.StatusShipped, &model.TrackingInfo{Carrier: "DHL", TrackingNumber: "T1"}, "", now))
	require.NoError(t, Transition(o, model.StatusDelivered, nil, "", now))
	assert.ErrorIs(t, Transition(o, model.StatusCancelled, nil, "", now), model.ErrInvalidTransition)

	// Terminal states reject everything.
	o = buyOrder()
	require.NoError(t, Transition(o, model.StatusCancelled, nil, "", now))
	assert.ErrorIs(t, Transition(o, model.StatusProcessing, nil, "", now), model.ErrInvalidTransition)
}

func TestTransition_CompletedIsTerminal(t *testing.T) {
	o := buyOrder()
	now := time.Now()
	require.NoError(t, Transition(o, model.StatusProcessing, nil, "", now))
	require.NoError(t, Transition(o, model.StatusShipped, &model.TrackingInfo{Carrier: "DHL", TrackingNumber: "T1"}, "", now))
	require.NoError(t, Transition(o, model.StatusDelivered, nil, "", now))
	require.NoError(t, Transition(o, model.StatusCompleted, nil, "", now))

	assert.ErrorIs(t, Transition(o, model.StatusCancelled, nil, "", now), model.ErrInvalidTransition)
}
