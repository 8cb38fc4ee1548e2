// Package testutil builds domain fixtures and throwaway databases for tests.
package testutil

import (
	"cmp"
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/rider"

	"github.com/stretchr/testify/require"
)

const (
	CustomerID   = "customer-1"
	RestaurantID = "restaurant-1"
	RiderPIN     = "4821"
	CustomerPIN  = "1357"
)

var Epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func Point(t testing.TB, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func Address(t testing.TB) order.Address {
	t.Helper()
	a, err := order.NewAddress("House 12, Road 5", "Dhaka", "Dhaka", "1209", Point(t, 23.7461, 90.3742))
	require.NoError(t, err)
	return a
}

func Items(t testing.TB) []order.Item {
	t.Helper()
	burger, err := order.NewItem("food-burger", "Beef Burger", 2, 45000, 10)
	require.NoError(t, err)
	fries, err := order.NewItem("food-fries", "Fries", 1, 12000, 0)
	require.NoError(t, err)
	return []order.Item{burger, fries}
}

// PendingOrder is a freshly placed order with random PINs.
func PendingOrder(t testing.TB) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), CustomerID, RestaurantID, Items(t), 6000, Address(t), Epoch)
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

// OrderFixture describes a persisted order for RestoredOrder.
type OrderFixture struct {
	ID                  kernel.UUID
	CustomerID          string
	RestaurantID        string
	Status              order.Status
	RiderID             string
	RiderPinAttempts    int
	CustomerPinAttempts int
	Address             *order.Address
	CreatedAt           time.Time
	Version             int64
}

// RestoredOrder rebuilds an order with the fixed RiderPIN and CustomerPIN.
func RestoredOrder(t testing.TB, f OrderFixture) *order.Order {
	t.Helper()
	riderPIN, err := kernel.NewPIN(RiderPIN)
	require.NoError(t, err)
	customerPIN, err := kernel.NewPIN(CustomerPIN)
	require.NoError(t, err)

	id := f.ID
	if id.Validate() != nil {
		id = kernel.NewUUID()
	}
	addr := Address(t)
	if f.Address != nil {
		addr = *f.Address
	}
	version := f.Version
	if version == 0 {
		version = 1
	}
	customerID := cmp.Or(f.CustomerID, CustomerID)
	restaurantID := cmp.Or(f.RestaurantID, RestaurantID)
	createdAt := f.CreatedAt
	if createdAt.IsZero() {
		createdAt = Epoch
	}

	o, err := order.RestoreOrder(order.Snapshot{
		ID:                  id,
		CustomerID:          customerID,
		RestaurantID:        restaurantID,
		RiderID:             f.RiderID,
		Items:               Items(t),
		Subtotal:            93000,
		DeliveryCharge:      6000,
		TotalAmount:         99000,
		Status:              f.Status,
		RiderPIN:            riderPIN,
		CustomerPIN:         customerPIN,
		RiderPinAttempts:    f.RiderPinAttempts,
		CustomerPinAttempts: f.CustomerPinAttempts,
		Address:             addr,
		CreatedAt:           createdAt,
		UpdatedAt:           createdAt,
		Version:             version,
		EventSequence:       version,
	})
	require.NoError(t, err)
	return o
}

// OnlineRider is a persisted rider, online since Epoch, holding held.
func OnlineRider(t testing.TB, id string, capacity int, held ...kernel.UUID) *rider.Rider {
	t.Helper()
	r, err := rider.RestoreRider(rider.Snapshot{
		ID:             id,
		Online:         true,
		OnlineSince:    Epoch,
		Capacity:       capacity,
		ActiveOrderIDs: held,
		Version:        1,
	})
	require.NoError(t, err)
	return r
}

func CustomerActor() order.Actor {
	return order.Actor{ID: CustomerID, Role: order.RoleCustomer}
}

func RestaurantActor() order.Actor {
	return order.Actor{ID: RestaurantID, Role: order.RoleRestaurant}
}

func RiderActor(id string) order.Actor {
	return order.Actor{ID: id, Role: order.RoleRider}
}

func OperatorActor() order.Actor {
	return order.Actor{ID: "operator-1", Role: order.RoleOperator}
}
