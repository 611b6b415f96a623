package jobs

import (
	"context"
	"log/slog"
	"sync/atomic"

	"rateshop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// QueueDrainJob periodically drains the order queue, running each queued
// order through the full decision pipeline.
type QueueDrainJob struct {
	handler  commands.DrainQueueCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
	running  atomic.Bool
}

// NewQueueDrainJob creates the drain job. The schedule is a five-field cron
// expression.
func NewQueueDrainJob(handler commands.DrainQueueCommandHandler, schedule string, logger *slog.Logger) *QueueDrainJob {
	return &QueueDrainJob{
		handler:  handler,
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger.With("component", "queue_drain_job"),
	}
}

// Start schedules the drain job. A tick is skipped when the previous drain
// is still in flight.
func (j *QueueDrainJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		if !j.running.CompareAndSwap(false, true) {
			j.logger.Info("Previous drain still running, skipping tick")
			return
		}
		defer j.running.Store(false)

		ctx := context.Background()
		cmd, err := commands.NewDrainQueueCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Queue drain command construction failed", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Queue drain job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Queue drain job started", "schedule", j.schedule)
	return nil
}

// Stop stops the drain job.
func (j *QueueDrainJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Queue drain job stopped")
}
