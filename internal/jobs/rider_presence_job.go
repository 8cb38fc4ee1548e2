package jobs

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RiderPresenceJob takes riders offline once they stop reporting locations.
type RiderPresenceJob struct {
	handler  commands.MarkIdleRidersOfflineCommandHandler
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewRiderPresenceJob(
	handler commands.MarkIdleRidersOfflineCommandHandler,
	schedule string,
	timeout time.Duration,
	logger *slog.Logger,
) *RiderPresenceJob {
	return &RiderPresenceJob{
		handler:  handler,
		schedule: schedule,
		timeout:  timeout,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "rider_presence_job"),
	}
}

// Start registers the sweep on its schedule. A sweep still running when the
// next tick fires keeps the tick from starting a second one.
func (j *RiderPresenceJob) Start() error {
	if err := addSkippingOverlaps(j.cron, j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rider presence job started",
		"schedule", j.schedule, "timeout", j.timeout)
	return nil
}

func (j *RiderPresenceJob) Run() {
	ctx := context.Background()

	cmd, err := commands.NewMarkIdleRidersOfflineCommand(j.timeout)
	if err != nil {
		j.logger.ErrorContext(ctx, "Rider presence job misconfigured", "error", err)
		return
	}

	count, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Rider presence job failed", "error", err)
		return
	}
	if count > 0 {
		j.logger.InfoContext(ctx, "Idle riders taken offline", "count", count)
	}
}

func (j *RiderPresenceJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Rider presence job stopped")
}
