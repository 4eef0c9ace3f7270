package commands

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// MarkOrderReadyCommandHandler handles the restaurant marking a confirmed
// order as ready for pickup. From this point the order is visible on the
// rider board and open to claims.
type MarkOrderReadyCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkOrderReadyCommandHandler creates a handler for the ready transition.
func NewMarkOrderReadyCommandHandler(uowFactory OrderUoWFactory) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the mark-ready command: loads the order, validates the
// confirmed->ready transition in the domain, and applies it as a conditional
// write so a stale caller cannot overwrite later progress.
func (h *MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd MarkOrderReadyCommand) error {
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

	if err = orderAggregate.MarkReady(); err != nil {
		return err
	}

	err = orderRepo.UpdateStatusIf(ctx, orderAggregate.ID(), order.Confirmed, order.Ready)
	if err != nil {
		if errors.Is(err, errs.ErrConditionNotMet) {
			return order.ErrInvalidTransition
		}
		return err
	}

	return uow.Commit(ctx)
}
