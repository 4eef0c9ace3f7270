// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the order lifecycle needs.
//
// # Available Jobs
//
// 1. PendingOrderReminderJob - Runs every minute to alert restaurants about
// orders that have sat in pending past the configured threshold
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(remindStalePendingHandler, 10*time.Minute, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The reminder sweep logs failures and lets the affected orders stay
// eligible, so a restaurant that was not reached is retried on the next run.
package jobs
