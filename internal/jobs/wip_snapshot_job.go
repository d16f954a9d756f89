package jobs

import (
	"context"
	"log/slog"

	"workflow/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// WipSnapshotJob periodically logs the work-in-progress counts so order flow
// can be followed from the logs without hitting the API.
type WipSnapshotJob struct {
	handler queries.GetWipSummaryQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewWipSnapshotJob creates the snapshot job over the WIP summary query.
func NewWipSnapshotJob(handler queries.GetWipSummaryQueryHandler, logger *slog.Logger) *WipSnapshotJob {
	return &WipSnapshotJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "wip_snapshot_job"),
	}
}

// Start begins the WIP snapshot job to run every five minutes.
func (j *WipSnapshotJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "WIP snapshot job started (running every 5 minutes)")
	return nil
}

// Stop stops the WIP snapshot job.
func (j *WipSnapshotJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "WIP snapshot job stopped")
}

func (j *WipSnapshotJob) run() {
	ctx := context.Background()

	summary, err := j.handler.Handle(ctx, queries.NewGetWipSummaryQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "WIP snapshot job failed", "error", err)
		return
	}

	attrs := []any{
		"totalOrders", summary.TotalOrders,
		"completedOrders", summary.CompletedOrders,
		"exceptionOrders", summary.ExceptionOrders,
	}
	for _, stage := range summary.Stages {
		attrs = append(attrs,
			"stage", stage.Stage.String(),
			"pending", stage.Pending,
			"claimed", stage.Claimed,
			"exception", stage.Exception,
		)
	}
	j.logger.InfoContext(ctx, "Work-in-progress snapshot", attrs...)
}
