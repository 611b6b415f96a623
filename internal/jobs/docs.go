// Package jobs provides the scheduled background tasks of the rate shopper.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to drive the two halves of the pipeline.
//
// # Available Jobs
//
// 1. BatchFetchJob - pulls every order awaiting shipment from the platform
// and enqueues it for processing
// 2. QueueDrainJob - drains the queue, running each order through
// classification, rating, selection and write back
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(fetchHandler, drainHandler, schedules, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are standard five-field cron expressions supplied by
// configuration. The drain job skips a tick when the previous run is
// still in flight, so a slow batch never overlaps itself.
package jobs
