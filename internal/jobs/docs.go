// Package jobs provides scheduled background tasks for the workflow tracker.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the fulfillment pipeline.
//
// # Available Jobs
//
// 1. StaleClaimJob - Runs every minute to surface stage claims held longer than the configured threshold
// 2. WipSnapshotJob - Runs every five minutes to log the work-in-progress counts per stage
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(workQueueHandler, wipSummaryHandler, threshold, logger)
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
// Both jobs are read-only: they query projections and log. Failures are
// logged and retried on the next tick; a failed job start stops any already
// running jobs.
package jobs
