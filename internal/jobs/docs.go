// Package jobs runs the service's periodic work on github.com/robfig/cron/v3
// schedules (six-field expressions, seconds first).
//
// # Available Jobs
//
//  1. EventRelayJob - hands committed order events to the configured
//     publisher, oldest first, and marks them published. Default every 5s.
//  2. RiderPresenceJob - takes online riders offline when neither a location
//     report nor the moment they came online falls inside the presence
//     timeout. Riders still holding orders are left alone. Default every
//     minute.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relayHandler, presenceHandler, schedules, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatalf("start jobs: %v", err)
//	}
//	defer jobManager.StopAll()
//
// Each job also exposes Run so tests can drive a single tick.
package jobs
