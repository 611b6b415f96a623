package commands

import (
	"errors"

	"rateshop/internal/core/domain/model/kernel"
	"rateshop/internal/core/domain/model/order"
)

var ErrProcessOrderCommandIsNotConstructed = errors.New(
	"ProcessOrderCommand must be created via NewProcessOrderCommand constructor",
)

// ProcessOrderCommand represents a request to run one order through the
// decision pipeline: dimensions, classification, rate shopping, selection
// and write-back.
type ProcessOrderCommand struct {
	order *order.Order

	guard kernel.ConstructorGuard
}

// NewProcessOrderCommand creates a command for the given order aggregate.
func NewProcessOrderCommand(aggregate *order.Order) (ProcessOrderCommand, error) {
	if aggregate == nil {
		return ProcessOrderCommand{}, ErrProcessOrderCommandIsNotConstructed
	}
	if err := aggregate.Validate(); err != nil {
		return ProcessOrderCommand{}, err
	}

	return ProcessOrderCommand{
		order: aggregate,
		guard: kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessOrderCommand) Validate() error {
	return c.guard.Validate(ErrProcessOrderCommandIsNotConstructed)
}

// Order returns the aggregate to process.
func (c ProcessOrderCommand) Order() *order.Order {
	return c.order
}
