package commands

import (
	"fmt"

	"rateshop/internal/core/domain/model/order"
	"rateshop/internal/pkg/errs"
)

// RetryEntry is one order held back for a single bounded replay.
type RetryEntry struct {
	Order  *order.Order
	Reason order.FailureReason
}

// RetryQueue collects orders whose first attempt hit a retryable failure.
// It is batch-scoped: the processing handler builds one per batch, replays
// every entry exactly once after the batch completes, and drops it.
type RetryQueue struct {
	entries []RetryEntry
}

// NewRetryQueue creates an empty queue.
func NewRetryQueue() *RetryQueue {
	return &RetryQueue{}
}

// Add appends an order with its failure reason. Only retryable reasons may
// enter the queue; fatal reasons fail the order where they arise.
func (q *RetryQueue) Add(aggregate *order.Order, reason order.FailureReason) error {
	if aggregate == nil {
		return errs.NewValueIsRequiredError("aggregate")
	}
	if !reason.Retryable() {
		return errs.NewValueIsInvalidErrorWithCause("reason",
			fmt.Errorf("%s is not retryable", reason))
	}
	q.entries = append(q.entries, RetryEntry{Order: aggregate, Reason: reason})
	return nil
}

// Len returns the number of queued entries.
func (q *RetryQueue) Len() int {
	return len(q.entries)
}

// Drain removes and returns every entry, leaving the queue empty. Failures
// during replay must not re-enter the drained queue.
func (q *RetryQueue) Drain() []RetryEntry {
	entries := q.entries
	q.entries = nil
	return entries
}
