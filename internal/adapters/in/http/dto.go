package http

import (
	"time"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/rider"
)

type itemRequest struct {
	FoodID             string `json:"food_id" validate:"required"`
	Name               string `json:"name" validate:"required"`
	Quantity           int    `json:"quantity" validate:"required,min=1"`
	UnitPrice          int64  `json:"unit_price" validate:"min=0"`
	DiscountPercentage int    `json:"discount_percentage" validate:"min=0,max=100"`
}

type addressRequest struct {
	Street    string   `json:"street" validate:"required"`
	City      string   `json:"city" validate:"required"`
	State     string   `json:"state"`
	Zip       string   `json:"zip"`
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

type createOrderRequest struct {
	RestaurantID    string         `json:"restaurant_id" validate:"required"`
	Items           []itemRequest  `json:"items" validate:"required,min=1,dive"`
	DeliveryAddress addressRequest `json:"delivery_address" validate:"required"`
}

func (r createOrderRequest) toDomain() ([]order.Item, order.Address, error) {
	items := make([]order.Item, 0, len(r.Items))
	for _, it := range r.Items {
		item, err := order.NewItem(it.FoodID, it.Name, it.Quantity, it.UnitPrice, it.DiscountPercentage)
		if err != nil {
			return nil, order.Address{}, err
		}
		items = append(items, item)
	}

	a := r.DeliveryAddress
	point, err := kernel.NewGeoPoint(*a.Latitude, *a.Longitude)
	if err != nil {
		return nil, order.Address{}, err
	}
	addr, err := order.NewAddress(a.Street, a.City, a.State, a.Zip, point)
	if err != nil {
		return nil, order.Address{}, err
	}
	return items, addr, nil
}

type changeStatusRequest struct {
	Event  string `json:"event" validate:"required,oneof=accept reject cancel mark_ready"`
	Reason string `json:"reason"`
}

type pinRequest struct {
	Pin string `json:"pin" validate:"required,len=4,numeric"`
}

type resetPinAttemptsRequest struct {
	Kind string `json:"kind" validate:"required,oneof=rider customer"`
}

type availabilityRequest struct {
	Online *bool `json:"online" validate:"required"`
}

type capacityRequest struct {
	Capacity int `json:"capacity" validate:"required,min=1"`
}

type locationRequest struct {
	Lat       *float64   `json:"lat" validate:"required,latitude"`
	Lng       *float64   `json:"lng" validate:"required,longitude"`
	Timestamp *time.Time `json:"timestamp" validate:"required"`
	OrderID   *string    `json:"order_id" validate:"omitempty,uuid"`
}

type addressResponse struct {
	Street    string  `json:"street"`
	City      string  `json:"city"`
	State     string  `json:"state,omitempty"`
	Zip       string  `json:"zip,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type orderResponse struct {
	ID                  string             `json:"id"`
	CustomerID          string             `json:"customer_id"`
	RestaurantID        string             `json:"restaurant_id"`
	RiderID             *string            `json:"rider_id"`
	Items               []queries.ItemView `json:"items"`
	Subtotal            int64              `json:"subtotal"`
	DeliveryCharge      int64              `json:"delivery_charge"`
	TotalAmount         int64              `json:"total_amount"`
	Status              string             `json:"status"`
	IsActive            bool               `json:"is_active"`
	CancellationReason  string             `json:"cancellation_reason,omitempty"`
	RiderPIN            string             `json:"rider_pin,omitempty"`
	CustomerPIN         string             `json:"customer_pin,omitempty"`
	RiderPinAttempts    int                `json:"rider_pin_attempts"`
	CustomerPinAttempts int                `json:"customer_pin_attempts"`
	DeliveryAddress     addressResponse    `json:"delivery_address"`
	DistanceKm          *float64           `json:"distance_km,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	Version             int64              `json:"version"`
}

func orderFromView(v queries.OrderView) orderResponse {
	resp := orderResponse{
		ID:                  v.ID.String(),
		CustomerID:          v.CustomerID,
		RestaurantID:        v.RestaurantID,
		Items:               v.Items,
		Subtotal:            v.Subtotal,
		DeliveryCharge:      v.DeliveryCharge,
		TotalAmount:         v.TotalAmount,
		Status:              v.Status.String(),
		IsActive:            v.IsActive,
		CancellationReason:  v.CancellationReason,
		RiderPIN:            v.RiderPIN,
		CustomerPIN:         v.CustomerPIN,
		RiderPinAttempts:    v.RiderPinAttempts,
		CustomerPinAttempts: v.CustomerPinAttempts,
		DeliveryAddress: addressResponse{
			Street:    v.Address.Street,
			City:      v.Address.City,
			State:     v.Address.State,
			Zip:       v.Address.Zip,
			Latitude:  v.Address.Latitude,
			Longitude: v.Address.Longitude,
		},
		DistanceKm: v.DistanceKm,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
		Version:    v.Version,
	}
	if v.RiderID != "" {
		riderID := v.RiderID
		resp.RiderID = &riderID
	}
	if resp.Items == nil {
		resp.Items = []queries.ItemView{}
	}
	return resp
}

func ordersFromViews(views []queries.OrderView) []orderResponse {
	resp := make([]orderResponse, len(views))
	for i, v := range views {
		resp[i] = orderFromView(v)
	}
	return resp
}

// viewFromOrder lets command responses share the read model's shape and
// redaction rules.
func viewFromOrder(o *order.Order) queries.OrderView {
	items := o.Items()
	itemViews := make([]queries.ItemView, len(items))
	for i, it := range items {
		itemViews[i] = queries.ItemView{
			FoodID:             it.FoodID(),
			Name:               it.Name(),
			Quantity:           it.Quantity(),
			UnitPrice:          it.UnitPrice(),
			DiscountPercentage: it.DiscountPercentage(),
		}
	}

	addr := o.Address()
	return queries.OrderView{
		ID:                  o.ID(),
		CustomerID:          o.CustomerID(),
		RestaurantID:        o.RestaurantID(),
		RiderID:             o.RiderID(),
		Items:               itemViews,
		Subtotal:            o.Subtotal(),
		DeliveryCharge:      o.DeliveryCharge(),
		TotalAmount:         o.TotalAmount(),
		Status:              o.Status(),
		IsActive:            o.IsActive(),
		CancellationReason:  o.CancellationReason(),
		RiderPIN:            o.RiderPIN().String(),
		CustomerPIN:         o.CustomerPIN().String(),
		RiderPinAttempts:    o.RiderPinAttempts(),
		CustomerPinAttempts: o.CustomerPinAttempts(),
		Address: queries.AddressView{
			Street:    addr.Street(),
			City:      addr.City(),
			State:     addr.State(),
			Zip:       addr.Zip(),
			Latitude:  addr.Point().Latitude(),
			Longitude: addr.Point().Longitude(),
		},
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
		Version:   o.Version(),
	}
}

type riderResponse struct {
	ID             string     `json:"id"`
	Online         bool       `json:"online"`
	OnlineSince    *time.Time `json:"online_since"`
	Capacity       int        `json:"capacity"`
	ActiveOrderIDs []string   `json:"active_order_ids"`
	Version        int64      `json:"version"`
}

func riderFromDomain(r *rider.Rider) riderResponse {
	held := r.ActiveOrderIDs()
	ids := make([]string, len(held))
	for i, id := range held {
		ids[i] = id.String()
	}

	resp := riderResponse{
		ID:             r.ID(),
		Online:         r.IsOnline(),
		Capacity:       r.Capacity(),
		ActiveOrderIDs: ids,
		Version:        r.Version(),
	}
	if r.IsOnline() {
		since := r.OnlineSince()
		resp.OnlineSince = &since
	}
	return resp
}

type riderLocationResponse struct {
	RiderID    string    `json:"rider_id"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	RecordedAt time.Time `json:"recorded_at"`
	OrderID    *string   `json:"order_id"`
	AgeSeconds float64   `json:"age_seconds"`
	Stale      bool      `json:"stale"`
}

func locationFromView(v queries.RiderLocationView) riderLocationResponse {
	resp := riderLocationResponse{
		RiderID:    v.RiderID,
		Lat:        v.Latitude,
		Lng:        v.Longitude,
		RecordedAt: v.RecordedAt,
		AgeSeconds: v.Age.Seconds(),
		Stale:      v.Stale,
	}
	if v.OrderID != nil {
		id := v.OrderID.String()
		resp.OrderID = &id
	}
	return resp
}
