package commands

import (
	"errors"

	"rateshop/internal/core/domain/model/kernel"
)

var ErrFetchOrdersCommandIsNotConstructed = errors.New(
	"FetchOrdersCommand must be created via NewFetchOrdersCommand constructor",
)

// FetchOrdersCommand represents a request to pull every order awaiting
// shipment from the platform and queue the unprocessed ones.
type FetchOrdersCommand struct {
	guard kernel.ConstructorGuard
}

// NewFetchOrdersCommand creates the command.
func NewFetchOrdersCommand() (FetchOrdersCommand, error) {
	return FetchOrdersCommand{guard: kernel.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c FetchOrdersCommand) Validate() error {
	return c.guard.Validate(ErrFetchOrdersCommandIsNotConstructed)
}
