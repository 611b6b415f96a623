package jobs

import (
	"fmt"
	"log/slog"

	"rateshop/internal/core/application/usecases/commands"
)

// Schedules carries the cron expressions for the background jobs.
type Schedules struct {
	BatchFetch string
	QueueDrain string
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	batchFetchJob *BatchFetchJob
	queueDrainJob *QueueDrainJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	fetchHandler commands.FetchOrdersCommandHandler,
	drainHandler commands.DrainQueueCommandHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		batchFetchJob: NewBatchFetchJob(fetchHandler, schedules.BatchFetch, logger),
		queueDrainJob: NewQueueDrainJob(drainHandler, schedules.QueueDrain, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.batchFetchJob.Start(); err != nil {
		return fmt.Errorf("failed to start batch fetch job: %w", err)
	}

	if err := jm.queueDrainJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.batchFetchJob.Stop()
		return fmt.Errorf("failed to start queue drain job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.queueDrainJob.Stop()
	jm.batchFetchJob.Stop()
}
