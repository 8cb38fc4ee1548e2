package commands_test

import (
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMarkIdleRidersOfflineCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewMarkIdleRidersOfflineCommand(10 * time.Minute)
	require.NoError(t, err)

	// Online since Epoch, which is long past.
	silent := testutil.OnlineRider(t, "silent", 1)
	busy := testutil.OnlineRider(t, "busy", 1, kernel.NewUUID())
	active := testutil.OnlineRider(t, "active", 1)
	fresh, err := rider.NewLocation("active", testutil.Point(t, 23.78, 90.40), time.Now(), nil)
	require.NoError(t, err)

	riderRepo, locationRepo := new(MockRiderRepository), new(MockLocationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RiderRepository").Return(riderRepo).Once()
	uow.On("LocationRepository").Return(locationRepo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	riderRepo.On("ListOnline", ctx).Return([]*rider.Rider{silent, busy, active}, nil).Once()
	locationRepo.On("Get", ctx, "silent").Return(rider.Location{}, errs.NewObjectNotFoundError("location", "silent")).Once()
	locationRepo.On("Get", ctx, "busy").Return(rider.Location{}, errs.NewObjectNotFoundError("location", "busy")).Once()
	locationRepo.On("Get", ctx, "active").Return(fresh, nil).Once()
	riderRepo.On("Update", ctx, silent).Return(nil).Once()
	factory := new(MockPresenceUoWFactory)
	factory.On("Create").Return(uow).Once()

	n, err := commands.NewMarkIdleRidersOfflineCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.False(t, silent.IsOnline())
	assert.True(t, busy.IsOnline())
	assert.True(t, active.IsOnline())
	riderRepo.AssertExpectations(t)
}

func TestMarkIdleRidersOfflineCommandHandler_Handle_SkipsConflicts(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewMarkIdleRidersOfflineCommand(time.Minute)
	require.NoError(t, err)
	silent := testutil.OnlineRider(t, "silent", 1)

	riderRepo, locationRepo := new(MockRiderRepository), new(MockLocationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RiderRepository").Return(riderRepo).Once()
	uow.On("LocationRepository").Return(locationRepo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	riderRepo.On("ListOnline", ctx).Return([]*rider.Rider{silent}, nil).Once()
	locationRepo.On("Get", ctx, "silent").Return(rider.Location{}, errs.NewObjectNotFoundError("location", "silent")).Once()
	riderRepo.On("Update", ctx, silent).Return(errs.NewVersionIsInvalidError("rider", nil)).Once()
	factory := new(MockPresenceUoWFactory)
	factory.On("Create").Return(uow).Once()

	n, err := commands.NewMarkIdleRidersOfflineCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, n)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
