package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/ports"
)

// RelayOrderEventsCommandHandler publishes the event log in order. Delivery is
// at least once: an event is marked published only after Publish returns, and
// a failure stops the batch so later events of the same order are not
// published ahead of it.
type RelayOrderEventsCommandHandler struct {
	uowFactory OrderEventUoWFactory
	publisher  ports.EventPublisher
}

func NewRelayOrderEventsCommandHandler(
	uowFactory OrderEventUoWFactory,
	publisher ports.EventPublisher,
) RelayOrderEventsCommandHandler {
	return RelayOrderEventsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle returns how many events were published.
func (h RelayOrderEventsCommandHandler) Handle(ctx context.Context, cmd RelayOrderEventsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	eventRepo := uow.OrderEventRepository()

	events, err := eventRepo.ListUnpublished(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(events) == 0 {
		return 0, nil
	}

	published := make([]kernel.UUID, 0, len(events))
	var publishErr error
	for _, event := range events {
		if publishErr = h.publisher.Publish(ctx, event); publishErr != nil {
			break
		}
		published = append(published, event.ID)
	}

	if len(published) > 0 {
		if err = eventRepo.MarkPublished(ctx, published, time.Now().UTC()); err != nil {
			return 0, err
		}

		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
	}

	return len(published), publishErr
}
