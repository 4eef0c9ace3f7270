package commands

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ConfirmOrderCommandHandler handles the restaurant accepting a pending
// order. The transition is written conditionally so that a concurrent
// decline (or duplicate confirm) of the same order cannot both apply, and
// the customer notification fires only after the commit succeeds.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle processes the confirm command: loads the order, validates the
// pending->confirmed transition in the domain, applies it as a conditional
// write, and notifies the customer post-commit. A notification failure is
// logged and swallowed; the transition already happened.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
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

	if err = orderAggregate.Confirm(); err != nil {
		return err
	}

	err = orderRepo.UpdateStatusIf(ctx, orderAggregate.ID(), order.Pending, order.Confirmed)
	if err != nil {
		if errors.Is(err, errs.ErrConditionNotMet) {
			return order.ErrInvalidTransition
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.dispatcher.OrderConfirmed(ctx, orderAggregate); err != nil {
		h.logger.Warn("order confirmed notification failed",
			"orderID", orderAggregate.ID().String(), "error", err)
	}

	return nil
}
