package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

// ErrDeclineOrderCommandIsNotConstructed is returned when a
// DeclineOrderCommand was not created via NewDeclineOrderCommand.
var ErrDeclineOrderCommandIsNotConstructed = errors.New(
	"DeclineOrderCommand must be created via NewDeclineOrderCommand constructor",
)

// DeclineOrderCommand represents the restaurant turning down a pending order.
type DeclineOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeclineOrderCommand creates a command to decline a pending order.
func NewDeclineOrderCommand(orderID kernel.UUID) (DeclineOrderCommand, error) {
	cmd := DeclineOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return DeclineOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeclineOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being declined.
func (c DeclineOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *DeclineOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}
