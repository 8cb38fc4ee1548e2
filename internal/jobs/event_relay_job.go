package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// EventRelayJob publishes order events that were committed to the event log
// but not yet handed to the publisher.
type EventRelayJob struct {
	handler   commands.RelayOrderEventsCommandHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewEventRelayJob(
	handler commands.RelayOrderEventsCommandHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *EventRelayJob {
	return &EventRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "event_relay_job"),
	}
}

// Start registers the relay on its schedule. Overlapping runs are skipped so
// a slow publisher never sees the same batch twice.
func (j *EventRelayJob) Start() error {
	if err := addSkippingOverlaps(j.cron, j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Event relay job started", "schedule", j.schedule)
	return nil
}

// Run relays one batch.
func (j *EventRelayJob) Run() {
	ctx := context.Background()

	cmd, err := commands.NewRelayOrderEventsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Event relay job misconfigured", "error", err)
		return
	}

	published, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Event relay job failed", "error", err, "published", published)
		return
	}
	if published > 0 {
		j.logger.DebugContext(ctx, "Order events relayed", "published", published)
	}
}

func (j *EventRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Event relay job stopped")
}
