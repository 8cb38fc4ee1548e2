package queries_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/rider"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/testutil"
	"orderflow/internal/testutil/testdb"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type QueriesTestSuite struct {
	suite.Suite
	open func(t testing.TB) *gorm.DB
	db   *gorm.DB
}

func (suite *QueriesTestSuite) SetupTest() {
	suite.db = suite.open(suite.T())
}

func (suite *QueriesTestSuite) seed(orders ...*order.Order) {
	ctx := context.Background()
	uow := postgres.NewGormUnitOfWorkFactory(suite.db).Create()
	suite.Require().NoError(uow.Begin(ctx))
	for _, o := range orders {
		suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	}
	suite.Require().NoError(uow.Commit(ctx))
}

func (suite *QueriesTestSuite) report(riderID string, lat, lng float64, at time.Time) {
	loc, err := rider.NewLocation(riderID, testutil.Point(suite.T(), lat, lng), at, nil)
	suite.Require().NoError(err)
	uow := postgres.NewGormUnitOfWorkFactory(suite.db).Create()
	_, err = uow.LocationRepository().Upsert(context.Background(), loc)
	suite.Require().NoError(err)
}

func (suite *QueriesTestSuite) order(f testutil.OrderFixture) *order.Order {
	return testutil.RestoredOrder(suite.T(), f)
}

func ids(views []queries.OrderView) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func (suite *QueriesTestSuite) TestGetOrder_RedactsPinsByRole() {
	o := suite.order(testutil.OrderFixture{Status: order.OutForDelivery, RiderID: "rider-1"})
	suite.seed(o)
	handler := queries.NewGetOrderQueryHandler(suite.db)

	cases := []struct {
		name        string
		actor       order.Actor
		riderPIN    string
		customerPIN string
	}{
		{"customer holds the delivery pin", testutil.CustomerActor(), "", testutil.CustomerPIN},
		{"assigned rider holds the pickup pin", testutil.RiderActor("rider-1"), testutil.RiderPIN, ""},
		{"restaurant sees neither", testutil.RestaurantActor(), "", ""},
		{"operator sees both", testutil.OperatorActor(), testutil.RiderPIN, testutil.CustomerPIN},
	}
	for _, tc := range cases {
		suite.Run(tc.name, func() {
			query, err := queries.NewGetOrderQuery(tc.actor, o.ID())
			suite.Require().NoError(err)

			view, err := handler.Handle(context.Background(), query)
			suite.Require().NoError(err)
			suite.True(view.ID.IsEqual(o.ID()))
			suite.Equal(tc.riderPIN, view.RiderPIN)
			suite.Equal(tc.customerPIN, view.CustomerPIN)
		})
	}
}

func (suite *QueriesTestSuite) TestGetOrder_MapsEveryColumn() {
	o := suite.order(testutil.OrderFixture{Status: order.Pending})
	suite.seed(o)

	query, err := queries.NewGetOrderQuery(testutil.CustomerActor(), o.ID())
	suite.Require().NoError(err)
	view, err := queries.NewGetOrderQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal(testutil.CustomerID, view.CustomerID)
	suite.Equal(testutil.RestaurantID, view.RestaurantID)
	suite.Empty(view.RiderID)
	suite.Require().Len(view.Items, 2)
	suite.Equal("food-burger", view.Items[0].FoodID)
	suite.Equal(2, view.Items[0].Quantity)
	suite.Equal(int64(45000), view.Items[0].UnitPrice)
	suite.Equal(10, view.Items[0].DiscountPercentage)
	suite.Equal(o.TotalAmount(), view.TotalAmount)
	suite.Equal(order.Pending, view.Status)
	suite.True(view.IsActive)
	suite.Equal("Dhaka", view.Address.City)
	suite.InDelta(23.7461, view.Address.Latitude, 1e-9)
	suite.WithinDuration(testutil.Epoch, view.CreatedAt, time.Millisecond)
	suite.Equal(int64(2), view.Version)
	suite.Nil(view.DistanceKm)
}

func (suite *QueriesTestSuite) TestGetOrder_Visibility() {
	pending := suite.order(testutil.OrderFixture{Status: order.Pending})
	pool := suite.order(testutil.OrderFixture{Status: order.ReadyForPickup})
	suite.seed(pending, pool)
	handler := queries.NewGetOrderQueryHandler(suite.db)

	get := func(actor order.Actor, id kernel.UUID) error {
		query, err := queries.NewGetOrderQuery(actor, id)
		suite.Require().NoError(err)
		_, err = handler.Handle(context.Background(), query)
		return err
	}

	suite.ErrorIs(get(order.Actor{ID: "customer-2", Role: order.RoleCustomer}, pending.ID()), errs.ErrUnauthorized)
	suite.ErrorIs(get(order.Actor{ID: "restaurant-2", Role: order.RoleRestaurant}, pending.ID()), errs.ErrUnauthorized)
	suite.ErrorIs(get(testutil.RiderActor("rider-1"), pending.ID()), errs.ErrUnauthorized)
	suite.NoError(get(testutil.RiderActor("rider-1"), pool.ID()), "riders may look at the pickup pool")
	suite.ErrorIs(get(testutil.CustomerActor(), kernel.NewUUID()), errs.ErrObjectNotFound)
}

func (suite *QueriesTestSuite) TestListCustomerOrders_OwnOrdersNewestFirst() {
	older := suite.order(testutil.OrderFixture{Status: order.Delivered})
	newer := suite.order(testutil.OrderFixture{Status: order.Pending, CreatedAt: testutil.Epoch.Add(time.Hour)})
	other := suite.order(testutil.OrderFixture{Status: order.Pending, CustomerID: "customer-2"})
	suite.seed(older, newer, other)
	handler := queries.NewListCustomerOrdersQueryHandler(suite.db)

	query, err := queries.NewListCustomerOrdersQuery(testutil.CustomerActor(), testutil.CustomerID)
	suite.Require().NoError(err)
	views, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{newer.ID(), older.ID()}, ids(views))
	suite.False(views[1].IsActive)

	query, err = queries.NewListCustomerOrdersQuery(testutil.CustomerActor(), "customer-2")
	suite.Require().NoError(err)
	_, err = handler.Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrUnauthorized)

	query, err = queries.NewListCustomerOrdersQuery(testutil.OperatorActor(), "customer-2")
	suite.Require().NoError(err)
	views, err = handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{other.ID()}, ids(views))
}

func (suite *QueriesTestSuite) TestListRestaurantOrders_StatusFilter() {
	pending := suite.order(testutil.OrderFixture{Status: order.Pending})
	preparing := suite.order(testutil.OrderFixture{Status: order.Preparing, CreatedAt: testutil.Epoch.Add(time.Minute)})
	ready := suite.order(testutil.OrderFixture{Status: order.ReadyForPickup, CreatedAt: testutil.Epoch.Add(2 * time.Minute)})
	elsewhere := suite.order(testutil.OrderFixture{Status: order.Pending, RestaurantID: "restaurant-2"})
	suite.seed(pending, preparing, ready, elsewhere)
	handler := queries.NewListRestaurantOrdersQueryHandler(suite.db)

	list := func(statuses ...order.Status) []kernel.UUID {
		query, err := queries.NewListRestaurantOrdersQuery(testutil.RestaurantActor(), testutil.RestaurantID, statuses)
		suite.Require().NoError(err)
		views, err := handler.Handle(context.Background(), query)
		suite.Require().NoError(err)
		for _, v := range views {
			suite.Empty(v.RiderPIN)
			suite.Empty(v.CustomerPIN)
		}
		return ids(views)
	}

	suite.Equal([]kernel.UUID{pending.ID(), preparing.ID(), ready.ID()}, list())
	suite.Equal([]kernel.UUID{pending.ID(), ready.ID()}, list(order.Pending, order.ReadyForPickup))
	suite.Equal([]kernel.UUID{preparing.ID()}, list(order.Preparing, order.Preparing))
	suite.Empty(list(order.Delivered))
}

func (suite *QueriesTestSuite) TestListRestaurantOrders_RejectsUnknownStatus() {
	_, err := queries.NewListRestaurantOrdersQuery(testutil.RestaurantActor(), testutil.RestaurantID, []order.Status{order.Unknown})
	suite.ErrorIs(err, errs.ErrValueIsInvalid)
}

func (suite *QueriesTestSuite) TestListAvailableOrders_OnlyReadyAndUnassigned() {
	open := suite.order(testutil.OrderFixture{Status: order.ReadyForPickup})
	taken := suite.order(testutil.OrderFixture{Status: order.ReadyForPickup, RiderID: "rider-2"})
	cooking := suite.order(testutil.OrderFixture{Status: order.Preparing})
	suite.seed(open, taken, cooking)

	query, err := queries.NewListAvailableOrdersQuery(testutil.RiderActor("rider-1"), "rider-1")
	suite.Require().NoError(err)
	views, err := queries.NewListAvailableOrdersQueryHandler(suite.db, 0).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{open.ID()}, ids(views))
	suite.Empty(views[0].RiderPIN)

	query, err = queries.NewListAvailableOrdersQuery(testutil.RiderActor("rider-2"), "rider-1")
	suite.Require().NoError(err)
	_, err = queries.NewListAvailableOrdersQueryHandler(suite.db, 0).Handle(context.Background(), query)
	suite.ErrorIs(err, errs.ErrUnauthorized)
}

func (suite *QueriesTestSuite) TestListAvailableOrders_RadiusFilter() {
	farAddress, err := order.NewAddress("Gulshan Ave 1", "Dhaka", "Dhaka", "1212", testutil.Point(suite.T(), 23.7925, 90.4078))
	suite.Require().NoError(err)

	near := suite.order(testutil.OrderFixture{Status: order.ReadyForPickup, CreatedAt: testutil.Epoch.Add(time.Minute)})
	far := suite.order(testutil.OrderFixture{Status: order.ReadyForPickup, Address: &farAddress})
	suite.seed(near, far)
	handler := queries.NewListAvailableOrdersQueryHandler(suite.db, 3)

	query, err := queries.NewListAvailableOrdersQuery(testutil.RiderActor("rider-1"), "rider-1")
	suite.Require().NoError(err)

	views, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{far.ID(), near.ID()}, ids(views), "no position yet: whole pool")

	suite.report("rider-1", 23.7470, 90.3750, testutil.Epoch)
	views, err = handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Equal([]kernel.UUID{near.ID()}, ids(views))
	suite.Require().NotNil(views[0].DistanceKm)
	suite.Less(*views[0].DistanceKm, 1.0)
}

func (suite *QueriesTestSuite) TestListRiderOrders_ActiveOnly() {
	carrying := suite.order(testutil.OrderFixture{Status: order.OutForDelivery, RiderID: "rider-1"})
	waiting := suite.order(testutil.OrderFixture{Status: order.ReadyForPickup, RiderID: "rider-1", CreatedAt: testutil.Epoch.Add(time.Minute)})
	done := suite.order(testutil.OrderFixture{Status: order.Delivered, RiderID: "rider-1"})
	someoneElse := suite.order(testutil.OrderFixture{Status: order.OutForDelivery, RiderID: "rider-2"})
	suite.seed(carrying, waiting, done, someoneElse)

	query, err := queries.NewListRiderOrdersQuery(testutil.RiderActor("rider-1"), "rider-1")
	suite.Require().NoError(err)
	views, err := queries.NewListRiderOrdersQueryHandler(suite.db).Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal([]kernel.UUID{carrying.ID(), waiting.ID()}, ids(views))
	suite.Equal(testutil.RiderPIN, views[0].RiderPIN)
	suite.Empty(views[0].CustomerPIN)
}

func (suite *QueriesTestSuite) TestGetRiderLocation_AgeAndStaleness() {
	handler := queries.NewGetRiderLocationQueryHandler(suite.db, 2*time.Minute)
	get := func(riderID string) (queries.RiderLocationView, error) {
		query, err := queries.NewGetRiderLocationQuery(testutil.CustomerActor(), riderID)
		suite.Require().NoError(err)
		return handler.Handle(context.Background(), query)
	}

	_, err := get("rider-1")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	suite.report("rider-1", 23.75, 90.38, time.Now().Add(-5*time.Minute))
	suite.report("rider-2", 23.76, 90.39, time.Now().Add(-10*time.Second))

	old, err := get("rider-1")
	suite.Require().NoError(err)
	suite.True(old.Stale)
	suite.GreaterOrEqual(old.Age, 5*time.Minute)
	suite.InDelta(23.75, old.Latitude, 1e-9)
	suite.Nil(old.OrderID)

	fresh, err := get("rider-2")
	suite.Require().NoError(err)
	suite.False(fresh.Stale)
	suite.Less(fresh.Age, 2*time.Minute)
}

func TestQueries_SQLite(t *testing.T) {
	suite.Run(t, &QueriesTestSuite{
		open: func(t testing.TB) *gorm.DB { return testdb.SQLite(t) },
	})
}

func TestQueries_Postgres(t *testing.T) {
	pg := testdb.Postgres(t)
	t.Cleanup(func() { pg.Terminate(t) })

	suite.Run(t, &QueriesTestSuite{
		open: func(t testing.TB) *gorm.DB {
			pg.Truncate(t)
			return pg.DB
		},
	})
}
