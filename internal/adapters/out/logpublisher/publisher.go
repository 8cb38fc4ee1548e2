// Package logpublisher is the default EventPublisher: it writes each order
// event as one structured log record.
package logpublisher

import (
	"context"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
)

type Publisher struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger.With("component", "order-events")}
}

func (p *Publisher) Publish(ctx context.Context, e order.DomainEvent) error {
	attrs := []slog.Attr{
		slog.String("event_id", e.ID.String()),
		slog.String("order_id", e.OrderID.String()),
		slog.Int64("sequence", e.Sequence),
		slog.String("to_status", e.ToStatus.String()),
		slog.String("actor_role", e.ActorRole.String()),
		slog.String("actor_id", e.ActorID),
		slog.Time("occurred_at", e.OccurredAt),
	}
	if e.FromStatus != order.Unknown {
		attrs = append(attrs, slog.String("from_status", e.FromStatus.String()))
	}
	if e.RiderID != "" {
		attrs = append(attrs, slog.String("rider_id", e.RiderID))
	}
	if e.Reason != "" {
		attrs = append(attrs, slog.String("reason", e.Reason))
	}

	p.logger.LogAttrs(ctx, slog.LevelInfo, string(e.Type), attrs...)
	return nil
}
