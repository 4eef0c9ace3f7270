package notify

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
)

// LogDispatcher writes lifecycle notifications to the structured log
// instead of a broker. Used in development and as the fallback when no
// AMQP broker is configured.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher creates a dispatcher logging at info level.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// OrderConfirmed logs the confirmation event.
func (d *LogDispatcher) OrderConfirmed(_ context.Context, o *order.Order) error {
	d.log("order.confirmed", o, "")
	return nil
}

// OrderClaimed logs the claim event.
func (d *LogDispatcher) OrderClaimed(_ context.Context, o *order.Order, riderName string) error {
	d.log("order.claimed", o, riderName)
	return nil
}

// OrderDelivered logs the delivery event.
func (d *LogDispatcher) OrderDelivered(_ context.Context, o *order.Order) error {
	d.log("order.delivered", o, "")
	return nil
}

// OrderStuckPending logs the stuck pending alert.
func (d *LogDispatcher) OrderStuckPending(_ context.Context, o *order.Order) error {
	d.log("order.stuck_pending", o, "")
	return nil
}

func (d *LogDispatcher) log(event string, o *order.Order, riderName string) {
	attrs := []any{
		"orderID", o.ID().String(),
		"status", o.Status().String(),
		"customerEmail", o.Customer().Email(),
		"totalCents", o.Fees().Total().Cents(),
	}
	if riderName != "" {
		attrs = append(attrs, "riderName", riderName)
	}
	d.logger.Info("notification: "+event, attrs...)
}
