package ports

import (
	"context"

	"rateshop/internal/core/domain/model/order"
)

// OrderQueue buffers fetched orders between the batch-fetch job and the
// processing job.
type OrderQueue interface {
	// Enqueue stores an unprocessed order for later pickup. Enqueueing an
	// order id that is already queued replaces the queued snapshot.
	Enqueue(ctx context.Context, aggregate *order.Order) error

	// Dequeue removes and returns the oldest queued order.
	// Returns errs.ErrObjectNotFound when the queue is empty.
	Dequeue(ctx context.Context) (*order.Order, error)
}
