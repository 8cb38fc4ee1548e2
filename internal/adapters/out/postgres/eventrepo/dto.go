// Package eventrepo persists the append-only order event log.
package eventrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderEventDTO is one entry of the log. (order_id, sequence) is unique so a
// replayed flush cannot duplicate history.
type OrderEventDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_order_events_order_seq"`
	Sequence    int64     `gorm:"not null;uniqueIndex:idx_order_events_order_seq"`
	Type        string    `gorm:"not null"`
	FromStatus  string
	ToStatus    string
	ActorRole   string
	ActorID     string
	RiderID     string
	Reason      string
	OccurredAt  time.Time  `gorm:"not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

func (OrderEventDTO) TableName() string {
	return "order_events"
}

func fromDomain(e order.DomainEvent) OrderEventDTO {
	from := ""
	if e.FromStatus != order.Unknown {
		from = e.FromStatus.String()
	}

	return OrderEventDTO{
		ID:         e.ID.Bytes(),
		OrderID:    e.OrderID.Bytes(),
		Sequence:   e.Sequence,
		Type:       string(e.Type),
		FromStatus: from,
		ToStatus:   e.ToStatus.String(),
		ActorRole:  e.ActorRole.String(),
		ActorID:    e.ActorID,
		RiderID:    e.RiderID,
		Reason:     e.Reason,
		OccurredAt: e.OccurredAt,
	}
}

func toDomain(dto OrderEventDTO) (order.DomainEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.DomainEvent{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.DomainEvent{}, err
	}

	var from order.Status
	if dto.FromStatus != "" {
		if from, err = order.ParseStatus(dto.FromStatus); err != nil {
			return order.DomainEvent{}, err
		}
	}
	to, err := order.ParseStatus(dto.ToStatus)
	if err != nil {
		return order.DomainEvent{}, err
	}

	return order.DomainEvent{
		ID:         id,
		OrderID:    orderID,
		Sequence:   dto.Sequence,
		Type:       order.EventType(dto.Type),
		FromStatus: from,
		ToStatus:   to,
		ActorRole:  order.Role(dto.ActorRole),
		ActorID:    dto.ActorID,
		RiderID:    dto.RiderID,
		Reason:     dto.Reason,
		OccurredAt: dto.OccurredAt.UTC(),
	}, nil
}
