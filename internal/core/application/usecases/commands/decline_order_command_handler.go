package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// DeclineOrderCommandHandler handles the restaurant turning down a pending
// order. Declined is a terminal state of its own, not a shortcut to
// delivered, so a declined order never appears as completed anywhere
// downstream.
type DeclineOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewDeclineOrderCommandHandler creates a handler for order declines.
func NewDeclineOrderCommandHandler(uowFactory OrderUoWFactory) DeclineOrderCommandHandler {
	return DeclineOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the decline command: loads the order, validates the
// pending->declined transition in the domain, and applies it as a
// conditional write so a decline cannot land on an order the restaurant
// already confirmed from another session.
func (h *DeclineOrderCommandHandler) Handle(ctx context.Context, cmd DeclineOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	orderAggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = orderAggregate.Decline(); err != nil {
		return err
	}

	err = orderRepo.UpdateStatusIf(ctx, orderAggregate.ID(), order.Pending, order.Declined)
	if err != nil {
		if errors.Is(err, errs.ErrConditionNotMet) {
			return order.ErrInvalidTransition
		}
		return err
	}

	return uow.Commit(ctx)
}
