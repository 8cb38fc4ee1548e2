// Package riderrepo maps rider aggregates to the riders table.
package riderrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/rider"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RiderDTO keeps held order ids as a JSON array; active_order_count mirrors
// its length for queries.
type RiderDTO struct {
	ID               string `gorm:"primaryKey"`
	Online           bool   `gorm:"index"`
	OnlineSince      *time.Time
	Capacity         int                            `gorm:"not null"`
	ActiveOrderIDs   datatypes.JSONSlice[uuid.UUID] `gorm:"column:active_order_ids;not null"`
	ActiveOrderCount int                            `gorm:"not null"`
	Version          int64                          `gorm:"not null"`
}

func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(r *rider.Rider) RiderDTO {
	var since *time.Time
	if t := r.OnlineSince(); !t.IsZero() {
		since = &t
	}

	ids := make(datatypes.JSONSlice[uuid.UUID], 0, r.ActiveOrderCount())
	for _, id := range r.ActiveOrderIDs() {
		ids = append(ids, id.Bytes())
	}

	return RiderDTO{
		ID:               r.ID(),
		Online:           r.IsOnline(),
		OnlineSince:      since,
		Capacity:         r.Capacity(),
		ActiveOrderIDs:   ids,
		ActiveOrderCount: len(ids),
		Version:          r.Version(),
	}
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	ids := make([]kernel.UUID, 0, len(dto.ActiveOrderIDs))
	for _, raw := range dto.ActiveOrderIDs {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	var since time.Time
	if dto.OnlineSince != nil {
		since = dto.OnlineSince.UTC()
	}

	return rider.RestoreRider(rider.Snapshot{
		ID:             dto.ID,
		Online:         dto.Online,
		OnlineSince:    since,
		Capacity:       dto.Capacity,
		ActiveOrderIDs: ids,
		Version:        dto.Version,
	})
}
