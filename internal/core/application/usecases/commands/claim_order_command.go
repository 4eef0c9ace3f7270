package commands

import (
	"errors"
	"strings"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrClaimOrderCommandIsNotConstructed is returned when a ClaimOrderCommand
// was not created via NewClaimOrderCommand.
var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a rider attempting to claim a ready order
// for delivery. Riders identify themselves with a name and phone at claim
// time; there are no rider accounts.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	riderID    kernel.UUID
	riderName  string
	riderPhone string

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command for a rider to claim an order.
// Rider contact validation happens here, before any write is attempted, so
// a rider with a missing name or phone never produces a rider row.
func NewClaimOrderCommand(
	orderID kernel.UUID,
	riderID kernel.UUID,
	riderName string,
	riderPhone string,
) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRiderID(riderID),
		cmd.setRiderName(riderName),
		cmd.setRiderPhone(riderPhone),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RiderID returns the identifier assigned to the claiming rider.
func (c ClaimOrderCommand) RiderID() kernel.UUID {
	return c.riderID
}

// RiderName returns the claiming rider's name.
func (c ClaimOrderCommand) RiderName() string {
	return c.riderName
}

// RiderPhone returns the claiming rider's phone number.
func (c ClaimOrderCommand) RiderPhone() string {
	return c.riderPhone
}

func (c *ClaimOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *ClaimOrderCommand) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.riderID = id
	return nil
}

func (c *ClaimOrderCommand) setRiderName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("rider name")
	}
	c.riderName = name
	return nil
}

func (c *ClaimOrderCommand) setRiderPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("rider phone")
	}
	c.riderPhone = phone
	return nil
}
