package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"workflow/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleClaimJob  *StaleClaimJob
	wipSnapshotJob *WipSnapshotJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes query handlers as dependencies to wire up the job execution.
func NewJobManager(
	workQueueHandler queries.GetWorkQueueQueryHandler,
	wipSummaryHandler queries.GetWipSummaryQueryHandler,
	staleClaimThreshold time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleClaimJob:  NewStaleClaimJob(workQueueHandler, staleClaimThreshold, logger),
		wipSnapshotJob: NewWipSnapshotJob(wipSummaryHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleClaimJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale claim job: %w", err)
	}

	if err := jm.wipSnapshotJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.staleClaimJob.Stop()
		return fmt.Errorf("failed to start WIP snapshot job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleClaimJob.Stop()
	jm.wipSnapshotJob.Stop()
}
