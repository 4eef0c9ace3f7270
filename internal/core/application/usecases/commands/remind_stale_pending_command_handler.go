package commands

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"marketplace/internal/core/ports"
)

// RemindStalePendingCommandHandler sweeps for orders stuck in pending and
// raises an ops alert for each. The handler remembers which orders it has
// already alerted on so a recurring sweep does not re-alert every run; the
// memory is per-process and resets on restart, which for an ops nudge is
// acceptable.
type RemindStalePendingCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger

	mu      sync.Mutex
	alerted map[string]struct{}
}

// NewRemindStalePendingCommandHandler creates a handler for the stale
// pending sweep.
func NewRemindStalePendingCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) *RemindStalePendingCommandHandler {
	return &RemindStalePendingCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger,
		alerted:    make(map[string]struct{}),
	}
}

// Handle finds orders still pending past the threshold and alerts ops about
// each one not already alerted on. Alert failures are logged and the order
// stays eligible for the next sweep.
func (h *RemindStalePendingCommandHandler) Handle(ctx context.Context, cmd RemindStalePendingCommand) error {
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

	cutoff := time.Now().UTC().Add(-cmd.Threshold())
	staleOrders, err := uow.OrderRepository().GetStalePending(ctx, cutoff)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, staleOrder := range staleOrders {
		id := staleOrder.ID().String()
		if h.alreadyAlerted(id) {
			continue
		}

		if err = h.dispatcher.OrderStuckPending(ctx, staleOrder); err != nil {
			h.logger.Warn("stuck pending alert failed", "orderID", id, "error", err)
			continue
		}

		h.markAlerted(id)
	}

	return nil
}

func (h *RemindStalePendingCommandHandler) alreadyAlerted(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.alerted[id]
	return ok
}

func (h *RemindStalePendingCommandHandler) markAlerted(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.alerted[id] = struct{}{}
}
