package commands

import (
	"context"
	"log/slog"

	"rateshop/internal/core/ports"
	"rateshop/internal/pkg/errs"
)

// FetchOrdersCommandHandler pulls awaiting-shipment orders from the platform
// and enqueues those not yet processed: anything already tagged Ready was
// decided on an earlier run and is skipped.
type FetchOrdersCommandHandler struct {
	source ports.OrderSource
	queue  ports.OrderQueue
	logger *slog.Logger
}

// NewFetchOrdersCommandHandler creates a handler over the order source and
// the buffering queue.
func NewFetchOrdersCommandHandler(source ports.OrderSource, queue ports.OrderQueue, logger *slog.Logger) (FetchOrdersCommandHandler, error) {
	if source == nil {
		return FetchOrdersCommandHandler{}, errs.NewValueIsRequiredError("source")
	}
	if queue == nil {
		return FetchOrdersCommandHandler{}, errs.NewValueIsRequiredError("queue")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return FetchOrdersCommandHandler{source: source, queue: queue, logger: logger}, nil
}

// Handle fetches and enqueues one batch. A single order failing to enqueue
// is logged and skipped, never aborting the batch.
func (h *FetchOrdersCommandHandler) Handle(ctx context.Context, cmd FetchOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orders, err := h.source.FetchAwaitingShipment(ctx)
	if err != nil {
		return err
	}

	queued := 0
	for _, aggregate := range orders {
		if aggregate.HasTag(TagReady) {
			h.logger.Debug("order already processed, skipping", "order_key", aggregate.Key())
			continue
		}
		if err := h.queue.Enqueue(ctx, aggregate); err != nil {
			h.logger.Warn("could not enqueue order",
				"order_key", aggregate.Key(), "error", err)
			continue
		}
		queued++
	}

	h.logger.Info("batch fetched", "total", len(orders), "queued", queued)
	return nil
}
