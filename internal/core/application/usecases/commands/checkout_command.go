package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// ErrCheckoutCommandIsNotConstructed is returned when a CheckoutCommand was
// not created via NewCheckoutCommand.
var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor",
)

// CheckoutCommand represents a request to create a new order from a
// confirmed checkout: the restaurant, the cart snapshot, and the customer's
// contact and delivery details. Fees are computed by the handler, not
// supplied by the caller.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	restaurantID kernel.UUID
	customer     order.Customer
	items        []order.LineItem

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a checkout command. Validates identifiers, the
// customer snapshot, and that the cart is not empty.
func NewCheckoutCommand(
	orderID kernel.UUID,
	restaurantID kernel.UUID,
	customer order.Customer,
	items []order.LineItem,
) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRestaurantID(restaurantID),
		cmd.setCustomer(customer),
		cmd.setItems(items),
	); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// OrderID returns the identifier assigned to the new order.
func (c CheckoutCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RestaurantID returns the restaurant the order is placed with.
func (c CheckoutCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Customer returns the customer snapshot.
func (c CheckoutCommand) Customer() order.Customer {
	return c.customer
}

// Items returns the cart line items.
func (c CheckoutCommand) Items() []order.LineItem {
	return c.items
}

func (c *CheckoutCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CheckoutCommand) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.restaurantID = id
	return nil
}

func (c *CheckoutCommand) setCustomer(customer order.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	c.customer = customer
	return nil
}

func (c *CheckoutCommand) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("cart items")
	}
	for _, li := range items {
		if err := li.Validate(); err != nil {
			return err
		}
	}
	c.items = items
	return nil
}
