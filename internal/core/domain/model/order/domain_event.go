package order

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
)

type EventType string

const (
	EventTypeCreated          EventType = "order_created"
	EventTypeAccepted         EventType = "order_accepted"
	EventTypeRejected         EventType = "order_rejected"
	EventTypeCancelled        EventType = "order_cancelled"
	EventTypeReady            EventType = "order_ready"
	EventTypeRiderAssigned    EventType = "rider_assigned"
	EventTypeRiderReleased    EventType = "rider_released"
	EventTypePickupVerified   EventType = "pickup_verified"
	EventTypeDeliveryVerified EventType = "delivery_verified"
	EventTypePinRejected      EventType = "pin_rejected"
	EventTypePinReset         EventType = "pin_attempts_reset"
)

// DomainEvent is one entry of an order's append-only history. Sequence is
// strictly increasing per order.
type DomainEvent struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	Sequence   int64
	Type       EventType
	FromStatus Status
	ToStatus   Status
	ActorRole  Role
	ActorID    string
	RiderID    string
	Reason     string
	OccurredAt time.Time
}

func statusEventType(e Event, to Status) EventType {
	switch e {
	case EventAccept:
		return EventTypeAccepted
	case EventReject:
		return EventTypeRejected
	case EventMarkReady:
		return EventTypeReady
	case EventVerifyRiderPin:
		return EventTypePickupVerified
	case EventVerifyCustomerPin:
		return EventTypeDeliveryVerified
	case EventAssign:
		return EventTypeRiderAssigned
	}
	if to == Cancelled {
		return EventTypeCancelled
	}
	return EventType(e.String())
}
