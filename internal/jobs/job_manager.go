package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"orderflow/internal/core/application/usecases/commands"
)

// Schedules holds the cron expressions (with seconds) and tuning of each job.
type Schedules struct {
	EventRelay           string
	EventRelayBatchSize  int
	RiderPresence        string
	RiderPresenceTimeout time.Duration
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	eventRelayJob    *EventRelayJob
	riderPresenceJob *RiderPresenceJob
}

func NewJobManager(
	relayHandler commands.RelayOrderEventsCommandHandler,
	presenceHandler commands.MarkIdleRidersOfflineCommandHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		eventRelayJob: NewEventRelayJob(relayHandler, schedules.EventRelay, schedules.EventRelayBatchSize, logger),
		riderPresenceJob: NewRiderPresenceJob(
			presenceHandler, schedules.RiderPresence, schedules.RiderPresenceTimeout, logger,
		),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.eventRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start event relay job: %w", err)
	}

	if err := jm.riderPresenceJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.eventRelayJob.Stop()
		return fmt.Errorf("failed to start rider presence job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.riderPresenceJob.Stop()
	jm.eventRelayJob.Stop()
}
