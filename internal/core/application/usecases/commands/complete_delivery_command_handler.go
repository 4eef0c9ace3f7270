package commands

import (
	"context"
	"errors"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// CompleteDeliveryCommandHandler handles the rider confirming delivery.
//
// Completion is idempotent: a retry of the final confirmation against an
// already-delivered order succeeds without error and without re-sending the
// customer notification. Only the call that actually performed the
// claimed->delivered transition notifies.
type CompleteDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery
// completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle processes the delivery confirmation.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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

	if orderAggregate.Status() == order.Delivered {
		return nil
	}

	if err = orderAggregate.Deliver(); err != nil {
		return err
	}

	err = orderRepo.UpdateStatusIf(ctx, orderAggregate.ID(), order.Claimed, order.Delivered)
	if err != nil {
		if errors.Is(err, errs.ErrConditionNotMet) {
			// A concurrent retry may have beaten us to the write. If the
			// order is delivered now, this call still counts as a success.
			current, getErr := orderRepo.Get(ctx, cmd.OrderID())
			if getErr != nil {
				return getErr
			}
			if current.Status() == order.Delivered {
				return nil
			}
			return order.ErrInvalidTransition
		}
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.dispatcher.OrderDelivered(ctx, orderAggregate); err != nil {
		h.logger.Warn("order delivered notification failed",
			"orderID", orderAggregate.ID().String(), "error", err)
	}

	return nil
}
