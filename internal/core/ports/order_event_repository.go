package ports

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// OrderEventRepository reads the order event log for relaying. Events are
// written by the unit of work when it commits.
type OrderEventRepository interface {
	// ListUnpublished returns at most limit events ordered by occurrence,
	// then per-order sequence.
	ListUnpublished(ctx context.Context, limit int) ([]order.DomainEvent, error)

	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher hands an event to whatever pushes updates to clients.
type EventPublisher interface {
	Publish(ctx context.Context, event order.DomainEvent) error
}
