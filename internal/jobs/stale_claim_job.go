package jobs

import (
	"context"
	"log/slog"
	"time"

	"workflow/internal/core/application/usecases/queries"
	"workflow/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// StaleClaimJob watches for stages held in Claimed longer than the configured
// threshold. Runs every minute and only logs; releasing a claim stays a human
// decision.
type StaleClaimJob struct {
	handler   queries.GetWorkQueueQueryHandler
	threshold time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleClaimJob creates the watchdog over the work-queue query.
func NewStaleClaimJob(
	handler queries.GetWorkQueueQueryHandler,
	threshold time.Duration,
	logger *slog.Logger,
) *StaleClaimJob {
	return &StaleClaimJob{
		handler:   handler,
		threshold: threshold,
		cron:      cron.New(),
		logger:    logger.With("component", "stale_claim_job"),
	}
}

// Start begins the stale claim job to run every minute.
func (j *StaleClaimJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale claim job started (running every minute)",
		"threshold", j.threshold.String())
	return nil
}

// Stop stops the stale claim job.
func (j *StaleClaimJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale claim job stopped")
}

func (j *StaleClaimJob) run() {
	ctx := context.Background()

	query, err := queries.NewGetWorkQueueQuery(nil, []order.StageState{order.Claimed}, "")
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale claim job failed to build query", "error", err)
		return
	}
	items, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale claim job failed", "error", err)
		return
	}

	cutoff := time.Now().UTC().Add(-j.threshold)
	for _, item := range items {
		if item.ClaimedAt == nil || item.ClaimedAt.After(cutoff) {
			continue
		}
		j.logger.WarnContext(ctx, "Stage claim exceeds threshold",
			"orderNumber", item.OrderNumber,
			"stage", item.Stage.String(),
			"assignee", item.Assignee,
			"claimedAt", item.ClaimedAt.Format(time.RFC3339),
			"heldFor", time.Since(*item.ClaimedAt).Round(time.Minute).String(),
		)
	}
}
