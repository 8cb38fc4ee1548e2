package jobs

import "github.com/robfig/cron/v3"

// addSkippingOverlaps registers run on c. A tick that fires while the previous
// run is still in progress is dropped.
func addSkippingOverlaps(c *cron.Cron, schedule string, run func()) error {
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(run))
	_, err := c.AddJob(schedule, job)
	return err
}
