package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// NotificationDispatcher is the fire-and-forget side channel for lifecycle
// events: customer emails and ops alerts. Implementations are invoked only
// after the corresponding state transition is durably committed, and their
// failure is logged by the caller, never propagated as a transition failure
// and never rolled back.
type NotificationDispatcher interface {
	// OrderConfirmed notifies the customer that the restaurant accepted
	// their order and is preparing it.
	OrderConfirmed(ctx context.Context, o *order.Order) error

	// OrderClaimed raises an ops alert that a rider picked up the delivery.
	OrderClaimed(ctx context.Context, o *order.Order, riderName string) error

	// OrderDelivered notifies the customer that their order arrived.
	OrderDelivered(ctx context.Context, o *order.Order) error

	// OrderStuckPending raises an ops alert for an order the restaurant has
	// left unaccepted past the reminder threshold.
	OrderStuckPending(ctx context.Context, o *order.Order) error
}
