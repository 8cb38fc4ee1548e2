// Package orderrepo maps order aggregates to the orders table.
package orderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OrderDTO is one row of the orders table. is_active is derived from status
// on every write and only exists for the read side.
type OrderDTO struct {
	ID                  uuid.UUID                    `gorm:"type:uuid;primaryKey"`
	CustomerID          string                       `gorm:"not null;index"`
	RestaurantID        string                       `gorm:"not null;index"`
	RiderID             *string                      `gorm:"index"`
	Items               datatypes.JSONSlice[ItemDTO] `gorm:"not null"`
	Subtotal            int64
	DeliveryCharge      int64
	TotalAmount         int64
	Status              int `gorm:"index"`
	CancellationReason  string
	RiderPIN            string     `gorm:"column:rider_pin;size:4"`
	CustomerPIN         string     `gorm:"column:customer_pin;size:4"`
	RiderPinAttempts    int        `gorm:"column:rider_pin_attempts"`
	CustomerPinAttempts int        `gorm:"column:customer_pin_attempts"`
	Address             AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	IsActive            bool       `gorm:"index"`
	CreatedAt           time.Time  `gorm:"autoCreateTime:false;index"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime:false"`
	Version             int64      `gorm:"not null"`
	EventSequence       int64      `gorm:"not null"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is the JSON shape of one line in the items column.
type ItemDTO struct {
	FoodID             string `json:"food_id"`
	Name               string `json:"name"`
	Quantity           int    `json:"quantity"`
	UnitPrice          int64  `json:"unit_price"`
	DiscountPercentage int    `json:"discount_percentage"`
}

type AddressDTO struct {
	Street    string
	City      string
	State     string
	Zip       string
	Latitude  float64
	Longitude float64
}

func fromDomain(o *order.Order) OrderDTO {
	var riderID *string
	if o.HasRider() {
		id := o.RiderID()
		riderID = &id
	}

	items := make(datatypes.JSONSlice[ItemDTO], 0, len(o.Items()))
	for _, it := range o.Items() {
		items = append(items, ItemDTO{
			FoodID:             it.FoodID(),
			Name:               it.Name(),
			Quantity:           it.Quantity(),
			UnitPrice:          it.UnitPrice(),
			DiscountPercentage: it.DiscountPercentage(),
		})
	}

	addr := o.Address()
	return OrderDTO{
		ID:                  o.ID().Bytes(),
		CustomerID:          o.CustomerID(),
		RestaurantID:        o.RestaurantID(),
		RiderID:             riderID,
		Items:               items,
		Subtotal:            o.Subtotal(),
		DeliveryCharge:      o.DeliveryCharge(),
		TotalAmount:         o.TotalAmount(),
		Status:              int(o.Status()),
		CancellationReason:  o.CancellationReason(),
		RiderPIN:            o.RiderPIN().String(),
		CustomerPIN:         o.CustomerPIN().String(),
		RiderPinAttempts:    o.RiderPinAttempts(),
		CustomerPinAttempts: o.CustomerPinAttempts(),
		Address: AddressDTO{
			Street:    addr.Street(),
			City:      addr.City(),
			State:     addr.State(),
			Zip:       addr.Zip(),
			Latitude:  addr.Point().Latitude(),
			Longitude: addr.Point().Longitude(),
		},
		IsActive:      o.IsActive(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
		Version:       o.Version(),
		EventSequence: o.EventSequence(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, it := range dto.Items {
		item, itemErr := order.NewItem(it.FoodID, it.Name, it.Quantity, it.UnitPrice, it.DiscountPercentage)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	point, err := kernel.NewGeoPoint(dto.Address.Latitude, dto.Address.Longitude)
	if err != nil {
		return nil, err
	}
	addr, err := order.NewAddress(dto.Address.Street, dto.Address.City, dto.Address.State, dto.Address.Zip, point)
	if err != nil {
		return nil, err
	}

	riderPIN, err := kernel.NewPIN(dto.RiderPIN)
	if err != nil {
		return nil, err
	}
	customerPIN, err := kernel.NewPIN(dto.CustomerPIN)
	if err != nil {
		return nil, err
	}

	var riderID string
	if dto.RiderID != nil {
		riderID = *dto.RiderID
	}

	return order.RestoreOrder(order.Snapshot{
		ID:                  id,
		CustomerID:          dto.CustomerID,
		RestaurantID:        dto.RestaurantID,
		RiderID:             riderID,
		Items:               items,
		Subtotal:            dto.Subtotal,
		DeliveryCharge:      dto.DeliveryCharge,
		TotalAmount:         dto.TotalAmount,
		Status:              order.Status(dto.Status),
		CancellationReason:  dto.CancellationReason,
		RiderPIN:            riderPIN,
		CustomerPIN:         customerPIN,
		RiderPinAttempts:    dto.RiderPinAttempts,
		CustomerPinAttempts: dto.CustomerPinAttempts,
		Address:             addr,
		CreatedAt:           dto.CreatedAt.UTC(),
		UpdatedAt:           dto.UpdatedAt.UTC(),
		Version:             dto.Version,
		EventSequence:       dto.EventSequence,
	})
}
