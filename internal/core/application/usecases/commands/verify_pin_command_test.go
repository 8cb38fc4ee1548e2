package commands_test

import (
	"errors"
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewVerifyPinCommand_Validation(t *testing.T) {
	_, err := commands.NewVerifyPinCommand(testutil.RestaurantActor(), kernel.NewUUID(), order.PinKindUnknown, "12a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind")
	assert.Contains(t, err.Error(), "pin")
}

// The wrong PIN is committed as a failed attempt, then the right
// one advances the order.
func TestVerifyPinCommandHandler_Handle_Pickup(t *testing.T) {
	ctx := t.Context()
	o := testutil.RestoredOrder(t, testutil.OrderFixture{Status: order.ReadyForPickup, RiderID: "rider-1"})
	h := func(factory commands.UoWFactory) commands.VerifyPinCommandHandler {
		return commands.NewVerifyPinCommandHandler(factory, 5, 3)
	}

	repo := new(MockOrderRepository)
	factory := new(MockUoWFactory)
	for range 2 {
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		uow.On("RiderRepository").Return(new(MockRiderRepository)).Once()
		uow.On("Commit", ctx).Return(nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		factory.On("Create").Return(uow).Once()
	}
	repo.On("Get", ctx, o.ID()).Return(o, nil).Twice()
	repo.On("Update", ctx, o).Return(nil).Twice()

	wrong, err := commands.NewVerifyPinCommand(testutil.RestaurantActor(), o.ID(), order.PinKindRider, "0000")
	require.NoError(t, err)
	_, err = h(factory).Handle(ctx, wrong)

	var pinErr *errs.InvalidPinError
	require.ErrorAs(t, err, &pinErr)
	assert.Equal(t, 4, pinErr.AttemptsLeft)
	assert.Equal(t, 1, o.RiderPinAttempts())
	assert.Equal(t, order.ReadyForPickup, o.Status())

	right, err := commands.NewVerifyPinCommand(testutil.RestaurantActor(), o.ID(), order.PinKindRider, testutil.RiderPIN)
	require.NoError(t, err)
	got, err := h(factory).Handle(ctx, right)

	require.NoError(t, err)
	assert.Equal(t, order.OutForDelivery, got.Status())
	repo.AssertExpectations(t)
	factory.AssertExpectations(t)
}

// Delivery completes the order and frees the rider in the same
// transaction.
func TestVerifyPinCommandHandler_Handle_Delivery(t *testing.T) {
	ctx := t.Context()
	o := testutil.RestoredOrder(t, testutil.OrderFixture{Status: order.OutForDelivery, RiderID: "rider-1"})
	r := testutil.OnlineRider(t, "rider-1", 2, o.ID())
	cmd, err := commands.NewVerifyPinCommand(testutil.RiderActor("rider-1"), o.ID(), order.PinKindCustomer, testutil.CustomerPIN)
	require.NoError(t, err)

	orderRepo, riderRepo := new(MockOrderRepository), new(MockRiderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("RiderRepository").Return(riderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		riderRepo.On("Get", ctx, "rider-1").Return(r, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		riderRepo.On("Update", ctx, r).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	got, err := commands.NewVerifyPinCommandHandler(factory, 5, 3).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Delivered, got.Status())
	assert.False(t, got.IsActive())
	assert.False(t, r.HasOrder(o.ID()))
	uow.AssertExpectations(t)
}

func TestVerifyPinCommandHandler_Handle_LockedDoesNotWrite(t *testing.T) {
	ctx := t.Context()
	o := testutil.RestoredOrder(t, testutil.OrderFixture{
		Status: order.ReadyForPickup, RiderID: "rider-1", RiderPinAttempts: 5,
	})
	cmd, err := commands.NewVerifyPinCommand(testutil.RestaurantActor(), o.ID(), order.PinKindRider, testutil.RiderPIN)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("RiderRepository").Return(new(MockRiderRepository)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewVerifyPinCommandHandler(factory, 5, 3).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPinLocked)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestVerifyPinCommandHandler_Handle_CommitErrorWinsOverInvalidPin(t *testing.T) {
	ctx := t.Context()
	o := testutil.RestoredOrder(t, testutil.OrderFixture{Status: order.ReadyForPickup, RiderID: "rider-1"})
	cmd, err := commands.NewVerifyPinCommand(testutil.RestaurantActor(), o.ID(), order.PinKindRider, "9999")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("RiderRepository").Return(new(MockRiderRepository)).Once()
	uow.On("Commit", ctx).Return(errors.New("connection reset")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewVerifyPinCommandHandler(factory, 5, 3).Handle(ctx, cmd)

	require.EqualError(t, err, "connection reset")
}

func TestResetPinAttemptsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	o := testutil.RestoredOrder(t, testutil.OrderFixture{
		Status: order.OutForDelivery, RiderID: "rider-1", CustomerPinAttempts: 5,
	})

	t.Run("operator unlocks", func(t *testing.T) {
		cmd, err := commands.NewResetPinAttemptsCommand(testutil.OperatorActor(), o.ID(), order.PinKindCustomer)
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			repo.On("Update", ctx, o).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		got, err := commands.NewResetPinAttemptsCommandHandler(factory, 3).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Zero(t, got.CustomerPinAttempts())
	})

	t.Run("customer may not", func(t *testing.T) {
		locked := testutil.RestoredOrder(t, testutil.OrderFixture{
			Status: order.OutForDelivery, RiderID: "rider-1", CustomerPinAttempts: 5,
		})
		cmd, err := commands.NewResetPinAttemptsCommand(testutil.CustomerActor(), locked.ID(), order.PinKindCustomer)
		require.NoError(t, err)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		repo.On("Get", ctx, locked.ID()).Return(locked, nil).Once()
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()

		_, err = commands.NewResetPinAttemptsCommandHandler(factory, 3).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		assert.Equal(t, 5, locked.CustomerPinAttempts())
	})
}
