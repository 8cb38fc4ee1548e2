// Package locationrepo stores the single last-known position of each rider.
package locationrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/rider"

	"github.com/google/uuid"
)

// LocationDTO holds one row per rider. recorded_at_nanos is the ordering key
// for the conditional upsert; recorded_at is kept for readers.
type LocationDTO struct {
	RiderID         string `gorm:"primaryKey"`
	Latitude        float64
	Longitude       float64
	RecordedAt      time.Time  `gorm:"not null"`
	RecordedAtNanos int64      `gorm:"not null"`
	OrderID         *uuid.UUID `gorm:"type:uuid"`
}

func (LocationDTO) TableName() string {
	return "rider_locations"
}

func fromDomain(loc rider.Location) LocationDTO {
	var orderID *uuid.UUID
	if id := loc.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return LocationDTO{
		RiderID:         loc.RiderID(),
		Latitude:        loc.Point().Latitude(),
		Longitude:       loc.Point().Longitude(),
		RecordedAt:      loc.RecordedAt(),
		RecordedAtNanos: loc.RecordedAt().UnixNano(),
		OrderID:         orderID,
	}
}

func toDomain(dto LocationDTO) (rider.Location, error) {
	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return rider.Location{}, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		id, idErr := kernel.UUIDFromBytes(dto.OrderID[:])
		if idErr != nil {
			return rider.Location{}, idErr
		}
		orderID = &id
	}

	return rider.NewLocation(dto.RiderID, point, time.Unix(0, dto.RecordedAtNanos), orderID)
}
