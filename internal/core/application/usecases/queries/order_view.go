// Package queries holds the read side. Handlers query the tables directly with
// raw SQL and return read models; nothing here goes through the aggregates or
// the unit of work.
package queries

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderView is the read model of an order. PINs are blanked by RedactFor
// according to who is asking.
type OrderView struct {
	ID                  kernel.UUID
	CustomerID          string
	RestaurantID        string
	RiderID             string
	Items               []ItemView
	Subtotal            int64
	DeliveryCharge      int64
	TotalAmount         int64
	Status              order.Status
	IsActive            bool
	CancellationReason  string
	RiderPIN            string
	CustomerPIN         string
	RiderPinAttempts    int
	CustomerPinAttempts int
	Address             AddressView
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int64

	// DistanceKm is set only by the available-orders query when the rider's
	// position is known.
	DistanceKm *float64
}

type ItemView struct {
	FoodID             string `json:"food_id"`
	Name               string `json:"name"`
	Quantity           int    `json:"quantity"`
	UnitPrice          int64  `json:"unit_price"`
	DiscountPercentage int    `json:"discount_percentage"`
}

type AddressView struct {
	Street    string
	City      string
	State     string
	Zip       string
	Latitude  float64
	Longitude float64
}

// RedactFor keeps only the PIN the actor is meant to hold: the customer reads
// the delivery PIN, the assigned rider the pickup PIN. Operators see both.
func (v OrderView) RedactFor(actor order.Actor) OrderView {
	riderPIN, customerPIN := v.RiderPIN, v.CustomerPIN
	v.RiderPIN, v.CustomerPIN = "", ""

	switch actor.Role {
	case order.RoleCustomer:
		if actor.ID == v.CustomerID {
			v.CustomerPIN = customerPIN
		}
	case order.RoleRider:
		if v.RiderID != "" && actor.ID == v.RiderID {
			v.RiderPIN = riderPIN
		}
	case order.RoleOperator:
		v.RiderPIN, v.CustomerPIN = riderPIN, customerPIN
	}

	return v
}

// VisibleTo mirrors Order.IsParty, plus riders may look at orders still in
// the pickup pool.
func (v OrderView) VisibleTo(actor order.Actor) bool {
	switch actor.Role {
	case order.RoleCustomer:
		return actor.ID == v.CustomerID
	case order.RoleRestaurant:
		return actor.ID == v.RestaurantID
	case order.RoleRider:
		if v.RiderID == "" {
			return v.Status == order.ReadyForPickup
		}
		return actor.ID == v.RiderID
	case order.RoleOperator, order.RoleSystem:
		return true
	default:
		return false
	}
}

const orderColumns = `
	id,
	customer_id,
	restaurant_id,
	rider_id,
	items,
	subtotal,
	delivery_charge,
	total_amount,
	status,
	is_active,
	cancellation_reason,
	rider_pin,
	customer_pin,
	rider_pin_attempts,
	customer_pin_attempts,
	address_street,
	address_city,
	address_state,
	address_zip,
	address_latitude,
	address_longitude,
	created_at,
	updated_at,
	version`

type rowScanner interface {
	Scan(dest ...any) error
}

type rowIterator interface {
	rowScanner
	Next() bool
	Err() error
	Close() error
}

func scanOrder(row rowScanner) (OrderView, error) {
	var (
		v       OrderView
		id      uuid.UUID
		riderID *string
		items   datatypes.JSONSlice[ItemView]
		status  int
	)

	err := row.Scan(
		&id,
		&v.CustomerID,
		&v.RestaurantID,
		&riderID,
		&items,
		&v.Subtotal,
		&v.DeliveryCharge,
		&v.TotalAmount,
		&status,
		&v.IsActive,
		&v.CancellationReason,
		&v.RiderPIN,
		&v.CustomerPIN,
		&v.RiderPinAttempts,
		&v.CustomerPinAttempts,
		&v.Address.Street,
		&v.Address.City,
		&v.Address.State,
		&v.Address.Zip,
		&v.Address.Latitude,
		&v.Address.Longitude,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.Version,
	)
	if err != nil {
		return OrderView{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return OrderView{}, err
	}
	v.ID = orderID
	if riderID != nil {
		v.RiderID = *riderID
	}
	v.Items = []ItemView(items)
	v.Status = order.Status(status)
	if err = v.Status.Validate(); err != nil {
		return OrderView{}, err
	}
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()

	return v, nil
}

func scanOrders(rows rowIterator) ([]OrderView, error) {
	defer rows.Close()

	views := make([]OrderView, 0)
	for rows.Next() {
		v, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}

func redactAll(views []OrderView, actor order.Actor) []OrderView {
	for i := range views {
		views[i] = views[i].RedactFor(actor)
	}
	return views
}
