package postgres_test

import (
	"context"
	"testing"

	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/eventrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/testutil"
	"orderflow/internal/testutil/testdb"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type UnitOfWorkTestSuite struct {
	suite.Suite
	open    func(t testing.TB) *gorm.DB
	db      *gorm.DB
	factory *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkTestSuite) SetupTest() {
	suite.db = suite.open(suite.T())
	suite.factory = postgres.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkTestSuite) newOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), testutil.CustomerID, testutil.RestaurantID,
		testutil.Items(suite.T()), 6000, testutil.Address(suite.T()), testutil.Epoch)
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkTestSuite) history(id kernel.UUID) []order.DomainEvent {
	events, err := eventrepo.NewGormOrderEventRepository(suite.db).ListByOrder(context.Background(), id)
	suite.Require().NoError(err)
	return events
}

func (suite *UnitOfWorkTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin is a no-op")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkTestSuite) TestCommit_FlushesPendingEvents() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.Require().Len(o.DomainEvents(), 1)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	_, err := o.Apply(testutil.RestaurantActor(), order.EventAccept, "", testutil.Epoch)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Empty(o.DomainEvents())
	events := suite.history(o.ID())
	suite.Require().Len(events, 2)
	suite.Equal(order.EventTypeCreated, events[0].Type)
	suite.Equal(int64(1), events[0].Sequence)
	suite.Equal(order.EventTypeAccepted, events[1].Type)
	suite.Equal(int64(2), events[1].Sequence)
}

func (suite *UnitOfWorkTestSuite) TestRollback_DiscardsRowsAndEvents() {
	ctx := context.Background()
	o := suite.newOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Empty(suite.history(o.ID()))
	suite.Len(o.DomainEvents(), 1, "events stay on the aggregate until a commit succeeds")
}

func (suite *UnitOfWorkTestSuite) TestAssignment_WritesOrderAndRiderTogether() {
	ctx := context.Background()
	o := testutil.RestoredOrder(suite.T(), testutil.OrderFixture{Status: order.ReadyForPickup})
	r, err := rider.NewRider("rider-1", 1)
	suite.Require().NoError(err)
	r.GoOnline(testutil.Epoch)

	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.OrderRepository().Add(ctx, o))
	suite.Require().NoError(seed.RiderRepository().Add(ctx, r))
	suite.Require().NoError(seed.Commit(ctx))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	loaded, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	claimer, err := uow.RiderRepository().Get(ctx, "rider-1")
	suite.Require().NoError(err)

	changed, err := services.NewAssignmentCoordinator().Accept(loaded, claimer, testutil.Epoch)
	suite.Require().NoError(err)
	suite.Require().True(changed)
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.RiderRepository().Update(ctx, claimer))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	gotOrder, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("rider-1", gotOrder.RiderID())
	gotRider, err := reader.RiderRepository().Get(ctx, "rider-1")
	suite.Require().NoError(err)
	suite.True(gotRider.HasOrder(o.ID()))

	events := suite.history(o.ID())
	suite.Require().NotEmpty(events)
	suite.Equal(order.EventTypeRiderAssigned, events[len(events)-1].Type)
}

func TestUnitOfWork_SQLite(t *testing.T) {
	suite.Run(t, &UnitOfWorkTestSuite{
		open: func(t testing.TB) *gorm.DB { return testdb.SQLite(t) },
	})
}

func TestUnitOfWork_Postgres(t *testing.T) {
	pg := testdb.Postgres(t)
	t.Cleanup(func() { pg.Terminate(t) })

	suite.Run(t, &UnitOfWorkTestSuite{
		open: func(t testing.TB) *gorm.DB {
			pg.Truncate(t)
			return pg.DB
		},
	})
}
