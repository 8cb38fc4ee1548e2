package services_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandoffVerifier_DefaultsThreshold(t *testing.T) {
	assert.Equal(t, services.DefaultPinMaxAttempts, services.NewHandoffVerifier(0).MaxAttempts())
	assert.Equal(t, 3, services.NewHandoffVerifier(3).MaxAttempts())
}

func TestHandoffVerifier_VerifyPickup(t *testing.T) {
	v := services.NewHandoffVerifier(5)
	o := testutil.RestoredOrder(t, testutil.OrderFixture{Status: order.ReadyForPickup, RiderID: "r1"})

	_, err := v.VerifyPickup(o, testutil.RestaurantActor(), "0000", now)
	require.ErrorIs(t, err, errs.ErrInvalidPin)
	assert.Equal(t, order.ReadyForPickup, o.Status())
	assert.Equal(t, 1, o.RiderPinAttempts())

	changed, err := v.VerifyPickup(o, testutil.RestaurantActor(), testutil.RiderPIN, now)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, order.OutForDelivery, o.Status())
	assert.Zero(t, o.RiderPinAttempts())
}

func TestHandoffVerifier_VerifyDelivery_ReleasesSlot(t *testing.T) {
	v := services.NewHandoffVerifier(5)
	o := testutil.RestoredOrder(t, testutil.OrderFixture{Status: order.OutForDelivery, RiderID: "r1"})
	r := onlineRider(t, "r1", 2)
	require.NoError(t, r.TakeOrder(o.ID()))

	changed, err := v.VerifyDelivery(o, r, testutil.RiderActor("r1"), testutil.CustomerPIN, now)

	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, order.Delivered, o.Status())
	assert.False(t, o.IsActive())
	assert.False(t, r.HasOrder(o.ID()))
}

func TestHandoffVerifier_VerifyDelivery_WrongPinKeepsSlot(t *testing.T) {
	v := services.NewHandoffVerifier(2)
	o := testutil.RestoredOrder(t, testutil.OrderFixture{Status: order.OutForDelivery, RiderID: "r1"})
	r := onlineRider(t, "r1", 1)
	require.NoError(t, r.TakeOrder(o.ID()))
	rider := testutil.RiderActor("r1")

	for range 2 {
		changed, err := v.VerifyDelivery(o, r, rider, "0000", now)
		require.ErrorIs(t, err, errs.ErrInvalidPin)
		assert.True(t, changed)
	}
	_, err := v.VerifyDelivery(o, r, rider, testutil.CustomerPIN, now)

	require.ErrorIs(t, err, errs.ErrPinLocked)
	assert.True(t, r.HasOrder(o.ID()))
	assert.Equal(t, order.OutForDelivery, o.Status())
}

func TestHandoffVerifier_Verify_DispatchesOnKind(t *testing.T) {
	v := services.NewHandoffVerifier(5)
	o := testutil.RestoredOrder(t, testutil.OrderFixture{Status: order.ReadyForPickup, RiderID: "r1"})

	_, err := v.Verify(order.PinKindUnknown, o, nil, testutil.RestaurantActor(), testutil.RiderPIN, now)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = v.Verify(order.PinKindRider, o, nil, testutil.RestaurantActor(), testutil.RiderPIN, now)
	require.NoError(t, err)
	assert.Equal(t, order.OutForDelivery, o.Status())
}
