package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/rider"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ErrClaimConflict is returned when another rider claimed the order first,
// or the order left the ready state before the claim was written.
var ErrClaimConflict = errors.New("order is no longer available to claim")

// ClaimOrderCommandHandler coordinates the rider claim protocol.
//
// The protocol is deliberately two separate committed writes, not one
// transaction:
//
//  1. The rider record is inserted and committed on its own.
//  2. The claim itself is a single conditional write: attach the rider and
//     advance to claimed only if the order is still ready with no rider.
//
// When step 2 loses the race the rider row from step 1 stays behind
// unattached. That is accepted: rider records are identity snapshots taken
// at claim time, not accounts, and an unattached one is inert.
type ClaimOrderCommandHandler struct {
	uowFactory ClaimUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewClaimOrderCommandHandler creates a handler for rider claims.
func NewClaimOrderCommandHandler(
	uowFactory ClaimUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handle processes a rider's claim. Exactly one of any set of concurrent
// claims on the same order succeeds; the rest get ErrClaimConflict. The ops
// notification fires only for the winner, after the claim is committed.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	newRider, err := rider.NewRider(cmd.RiderID(), cmd.RiderName(), cmd.RiderPhone())
	if err != nil {
		return err
	}

	if err = h.insertRider(ctx, newRider); err != nil {
		return err
	}

	claimed, err := h.claim(ctx, cmd)
	if err != nil {
		return err
	}

	if err = h.dispatcher.OrderClaimed(ctx, claimed, cmd.RiderName()); err != nil {
		h.logger.Warn("order claimed notification failed",
			"orderID", cmd.OrderID().String(), "error", err)
	}

	return nil
}

func (h *ClaimOrderCommandHandler) insertRider(ctx context.Context, newRider *rider.Rider) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.RiderRepository().Add(ctx, newRider); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *ClaimOrderCommandHandler) claim(
	ctx context.Context,
	cmd ClaimOrderCommand,
) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	orderAggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = orderAggregate.Claim(cmd.RiderID()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClaimConflict, err)
	}

	if err = orderRepo.Claim(ctx, cmd.OrderID(), cmd.RiderID()); err != nil {
		if errors.Is(err, errs.ErrConditionNotMet) {
			return nil, ErrClaimConflict
		}
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return orderAggregate, nil
}
