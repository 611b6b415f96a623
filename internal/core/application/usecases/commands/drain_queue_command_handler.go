package commands

import (
	"context"
	"errors"
	"log/slog"

	"rateshop/internal/core/ports"
	"rateshop/internal/pkg/errs"
)

// DrainQueueCommandHandler processes every queued order through the decision
// pipeline, then replays the batch's retry entries exactly once. The retry
// queue is built fresh per invocation and discarded with it.
type DrainQueueCommandHandler struct {
	queue     ports.OrderQueue
	processor *ProcessOrderCommandHandler
	logger    *slog.Logger
}

// NewDrainQueueCommandHandler creates a handler over the order queue and the
// per-order processor.
func NewDrainQueueCommandHandler(queue ports.OrderQueue, processor *ProcessOrderCommandHandler, logger *slog.Logger) (DrainQueueCommandHandler, error) {
	if queue == nil {
		return DrainQueueCommandHandler{}, errs.NewValueIsRequiredError("queue")
	}
	if processor == nil {
		return DrainQueueCommandHandler{}, errs.NewValueIsRequiredError("processor")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return DrainQueueCommandHandler{queue: queue, processor: processor, logger: logger}, nil
}

// Handle drains the queue. A single order's failure never aborts the batch;
// it is logged and the drain moves on.
func (h *DrainQueueCommandHandler) Handle(ctx context.Context, cmd DrainQueueCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	retries := NewRetryQueue()
	processed := 0
	for {
		aggregate, err := h.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				break
			}
			return err
		}

		processCmd, err := NewProcessOrderCommand(aggregate)
		if err != nil {
			h.logger.Error("invalid queued order", "error", err)
			continue
		}
		if err := h.processor.Handle(ctx, processCmd, retries); err != nil {
			h.logger.Error("order processing failed",
				"order_key", aggregate.Key(), "error", err)
			continue
		}
		processed++
	}

	for _, entry := range retries.Drain() {
		h.logger.Info("replaying order",
			"order_key", entry.Order.Key(), "reason", string(entry.Reason))
		if err := h.processor.HandleRetry(ctx, entry); err != nil {
			h.logger.Error("order replay failed",
				"order_key", entry.Order.Key(), "error", err)
		}
	}

	h.logger.Info("queue drained", "processed", processed)
	return nil
}
