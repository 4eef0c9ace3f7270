// Package notify provides NotificationDispatcher implementations: an AMQP
// publisher for production and a log-only fallback for development. Both
// are fire-and-forget by contract; a failed notification never affects the
// order transition that triggered it.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
)

const notificationsExchange = "order_notifications"

// notificationMessage is the wire shape published for every lifecycle
// event. Money fields are in cents.
type notificationMessage struct {
	Event          string `json:"event"`
	OrderID        string `json:"order_id"`
	CustomerName   string `json:"customer_name"`
	CustomerEmail  string `json:"customer_email"`
	CustomerPhone  string `json:"customer_phone"`
	DeliveryAddr   string `json:"delivery_address"`
	RiderName      string `json:"rider_name,omitempty"`
	TotalCents     int64  `json:"total_cents"`
	Status         string `json:"status"`
	OccurredAtUnix int64  `json:"occurred_at"`
}

// AmqpDispatcher publishes lifecycle notifications to a topic exchange.
// Downstream consumers (the email sender, the ops alert bot) bind their own
// queues with the routing keys they care about: order.confirmed,
// order.claimed, order.delivered, order.stuck_pending.
type AmqpDispatcher struct {
	ch *amqp.Channel
}

// NewAmqpDispatcher declares the notifications exchange on the given
// channel and returns a dispatcher publishing to it.
func NewAmqpDispatcher(ch *amqp.Channel) (*AmqpDispatcher, error) {
	err := ch.ExchangeDeclare(notificationsExchange, "topic", true, false, false, false, nil)
	if err != nil {
		return nil, err
	}

	return &AmqpDispatcher{ch: ch}, nil
}

// OrderConfirmed publishes the customer-facing confirmation event.
func (d *AmqpDispatcher) OrderConfirmed(ctx context.Context, o *order.Order) error {
	return d.publish(ctx, "order.confirmed", buildMessage("order.confirmed", o, ""))
}

// OrderClaimed publishes the ops alert that a rider picked up the delivery.
func (d *AmqpDispatcher) OrderClaimed(ctx context.Context, o *order.Order, riderName string) error {
	return d.publish(ctx, "order.claimed", buildMessage("order.claimed", o, riderName))
}

// OrderDelivered publishes the customer-facing delivery event.
func (d *AmqpDispatcher) OrderDelivered(ctx context.Context, o *order.Order) error {
	return d.publish(ctx, "order.delivered", buildMessage("order.delivered", o, ""))
}

// OrderStuckPending publishes the ops alert for an unaccepted order.
func (d *AmqpDispatcher) OrderStuckPending(ctx context.Context, o *order.Order) error {
	return d.publish(ctx, "order.stuck_pending", buildMessage("order.stuck_pending", o, ""))
}

func (d *AmqpDispatcher) publish(ctx context.Context, key string, msg notificationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	return d.ch.PublishWithContext(ctx, notificationsExchange, key, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
}

func buildMessage(event string, o *order.Order, riderName string) notificationMessage {
	customer := o.Customer()
	return notificationMessage{
		Event:          event,
		OrderID:        o.ID().String(),
		CustomerName:   customer.Name(),
		CustomerEmail:  customer.Email(),
		CustomerPhone:  customer.Phone(),
		DeliveryAddr:   customer.Address(),
		RiderName:      riderName,
		TotalCents:     o.Fees().Total().Cents(),
		Status:         o.Status().String(),
		OccurredAtUnix: time.Now().UTC().Unix(),
	}
}
