package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// CheckoutCommandHandler handles the business logic for order creation.
// Looks up the restaurant for its delivery fee, computes the fee snapshot
// from the cart, and persists a new order in "pending" status.
//
// Example:
//
//	handler := NewCheckoutCommandHandler(uowFactory)
//	cmd, _ := NewCheckoutCommand(orderID, restaurantID, customer, items)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("checkout failed: %w", err)
//	}
//	// Order is now pending and awaiting restaurant confirmation
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
}

// NewCheckoutCommandHandler creates a handler for checkout operations.
// Requires a CheckoutUoWFactory for transactional persistence.
func NewCheckoutCommandHandler(uowFactory CheckoutUoWFactory) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the checkout command. Fees are computed server-side from
// the cart and the restaurant's delivery fee, never taken from the caller,
// and are frozen on the order at creation time.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	restaurantRepo := uow.RestaurantRepository()
	restaurant, err := restaurantRepo.Get(ctx, cmd.RestaurantID())
	if err != nil {
		return err
	}

	fees, err := order.NewFees(order.SubtotalOf(cmd.Items()), restaurant.DeliveryFee())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.RestaurantID(), cmd.Customer(), cmd.Items(), fees)
	if err != nil {
		return err
	}

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
