package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/testutil"
	"orderflow/internal/testutil/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type acceptUoWFactory struct {
	factory *postgres.GormUnitOfWorkFactory
}

func (f acceptUoWFactory) Create() commands.UoW {
	return f.factory.Create()
}

func seedOrders(t *testing.T, factory *postgres.GormUnitOfWorkFactory, n int) []kernel.UUID {
	t.Helper()
	ctx := context.Background()
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	ids := make([]kernel.UUID, 0, n)
	for range n {
		o := testutil.RestoredOrder(t, testutil.OrderFixture{Status: order.ReadyForPickup})
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
		ids = append(ids, o.ID())
	}
	require.NoError(t, uow.Commit(ctx))
	return ids
}

func seedRiders(t *testing.T, factory *postgres.GormUnitOfWorkFactory, capacity int, ids ...string) {
	t.Helper()
	ctx := context.Background()
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	for _, id := range ids {
		r, err := rider.NewRider(id, capacity)
		require.NoError(t, err)
		r.GoOnline(testutil.Epoch)
		require.NoError(t, uow.RiderRepository().Add(ctx, r))
	}
	require.NoError(t, uow.Commit(ctx))
}

func accept(handler commands.AcceptOrderCommandHandler, riderID string, orderID kernel.UUID) error {
	cmd, err := commands.NewAcceptOrderCommand(testutil.RiderActor(riderID), orderID)
	if err != nil {
		return err
	}
	_, err = handler.Handle(context.Background(), cmd)
	return err
}

// runManyRidersOneOrder has every rider claim the same order at once.
func runManyRidersOneOrder(t *testing.T, db *gorm.DB, capacity int) {
	const racers = 8
	factory := postgres.NewGormUnitOfWorkFactory(db)
	orderID := seedOrders(t, factory, 1)[0]

	riderIDs := make([]string, 0, racers)
	for i := range racers {
		riderIDs = append(riderIDs, fmt.Sprintf("rider-%d", i))
	}
	seedRiders(t, factory, capacity, riderIDs...)

	handler := commands.NewAcceptOrderCommandHandler(acceptUoWFactory{factory}, racers)

	results := make([]error, racers)
	var wg sync.WaitGroup
	for i, id := range riderIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = accept(handler, id, orderID)
		}()
	}
	wg.Wait()

	winners := 0
	winner := ""
	for i, err := range results {
		if err == nil {
			winners++
			winner = riderIDs[i]
			continue
		}
		assert.ErrorIs(t, err, errs.ErrAlreadyAssigned)
	}
	require.Equal(t, 1, winners)

	reader := factory.Create()
	o, err := reader.OrderRepository().Get(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, winner, o.RiderID())

	held := 0
	for _, id := range riderIDs {
		r, getErr := reader.RiderRepository().Get(context.Background(), id)
		require.NoError(t, getErr)
		held += r.ActiveOrderCount()
	}
	assert.Equal(t, 1, held, "only the winner holds a slot")
}

// runOneRiderManyOrders has one rider claim more orders than it has slots.
func runOneRiderManyOrders(t *testing.T, db *gorm.DB, capacity, orders int) {
	factory := postgres.NewGormUnitOfWorkFactory(db)
	orderIDs := seedOrders(t, factory, orders)
	seedRiders(t, factory, capacity, "rider-1")

	handler := commands.NewAcceptOrderCommandHandler(acceptUoWFactory{factory}, orders+1)

	results := make([]error, orders)
	var wg sync.WaitGroup
	for i, id := range orderIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = accept(handler, "rider-1", id)
		}()
	}
	wg.Wait()

	accepted := 0
	for _, err := range results {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, errs.ErrCapacityExceeded):
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, capacity, accepted)

	r, err := factory.Create().RiderRepository().Get(context.Background(), "rider-1")
	require.NoError(t, err)
	assert.Equal(t, capacity, r.ActiveOrderCount())
}

func TestAcceptOrder_ConcurrentRiders_SQLite(t *testing.T) {
	for _, capacity := range []int{1, 3} {
		t.Run(fmt.Sprintf("capacity %d", capacity), func(t *testing.T) {
			runManyRidersOneOrder(t, testdb.SQLite(t), capacity)
		})
	}
}

func TestAcceptOrder_CapacityUnderContention_SQLite(t *testing.T) {
	for _, capacity := range []int{1, 3} {
		t.Run(fmt.Sprintf("capacity %d", capacity), func(t *testing.T) {
			runOneRiderManyOrders(t, testdb.SQLite(t), capacity, 6)
		})
	}
}

func TestAcceptOrder_Races_Postgres(t *testing.T) {
	pg := testdb.Postgres(t)
	t.Cleanup(func() { pg.Terminate(t) })

	for _, capacity := range []int{1, 3} {
		t.Run(fmt.Sprintf("many riders capacity %d", capacity), func(t *testing.T) {
			pg.Truncate(t)
			runManyRidersOneOrder(t, pg.DB, capacity)
		})
		t.Run(fmt.Sprintf("one rider capacity %d", capacity), func(t *testing.T) {
			pg.Truncate(t)
			runOneRiderManyOrders(t, pg.DB, capacity, 6)
		})
	}
}
