package commands

import (
	"errors"

	"rateshop/internal/core/domain/model/kernel"
)

var ErrDrainQueueCommandIsNotConstructed = errors.New(
	"DrainQueueCommand must be created via NewDrainQueueCommand constructor",
)

// DrainQueueCommand represents a request to process every queued order and
// replay the batch's retryable failures once.
type DrainQueueCommand struct {
	guard kernel.ConstructorGuard
}

// NewDrainQueueCommand creates the command.
func NewDrainQueueCommand() (DrainQueueCommand, error) {
	return DrainQueueCommand{guard: kernel.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c DrainQueueCommand) Validate() error {
	return c.guard.Validate(ErrDrainQueueCommandIsNotConstructed)
}
