package jobs

import (
	"context"
	"log/slog"

	"rateshop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// BatchFetchJob periodically pulls every order awaiting shipment from the
// platform and enqueues it for processing.
type BatchFetchJob struct {
	handler  commands.FetchOrdersCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewBatchFetchJob creates the fetch job. The schedule is a five-field cron
// expression.
func NewBatchFetchJob(handler commands.FetchOrdersCommandHandler, schedule string, logger *slog.Logger) *BatchFetchJob {
	return &BatchFetchJob{
		handler:  handler,
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger.With("component", "batch_fetch_job"),
	}
}

// Start schedules the fetch job.
func (j *BatchFetchJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		cmd, err := commands.NewFetchOrdersCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Batch fetch command construction failed", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Batch fetch job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Batch fetch job started", "schedule", j.schedule)
	return nil
}

// Stop stops the fetch job.
func (j *BatchFetchJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Batch fetch job stopped")
}
