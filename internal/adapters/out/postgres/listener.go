package postgres

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"marketplace/internal/core/ports"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// orderChangeChannel is the Postgres NOTIFY channel carrying order change
// hints.
const orderChangeChannel = "order_changes"

// EnsureOrderChangeTrigger installs the trigger that publishes a NOTIFY for
// every insert or update on the orders table. Safe to run on every startup.
func EnsureOrderChangeTrigger(db *gorm.DB) error {
	const ddl = `
CREATE OR REPLACE FUNCTION notify_order_change() RETURNS trigger AS $$
BEGIN
	PERFORM pg_notify(
		'order_changes',
		json_build_object('order_id', NEW.id, 'op', TG_OP)::text
	);
	RETURN NEW;
END;
$$ LANGUAGE plpgsql;

DROP TRIGGER IF EXISTS orders_notify_change ON orders;
CREATE TRIGGER orders_notify_change
	AFTER INSERT OR UPDATE ON orders
	FOR EACH ROW EXECUTE FUNCTION notify_order_change();
`
	return db.Exec(ddl).Error
}

// orderChangePayload mirrors the JSON built by the trigger.
type orderChangePayload struct {
	OrderID string `json:"order_id"`
	Op      string `json:"op"`
}

// changeHub is the in-process fan-out behind the listener: it owns the
// subscriber set and delivers each change to every subscriber in turn.
type changeHub struct {
	mu          sync.Mutex
	subscribers map[int]func(ports.OrderChange)
	nextID      int
}

func newChangeHub() *changeHub {
	return &changeHub{
		subscribers: make(map[int]func(ports.OrderChange)),
	}
}

func (h *changeHub) subscribe(handler func(ports.OrderChange)) ports.UnsubscribeFunc {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.subscribers[id] = handler

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers, id)
	}
}

func (h *changeHub) deliver(change ports.OrderChange) {
	h.mu.Lock()
	handlers := make([]func(ports.OrderChange), 0, len(h.subscribers))
	for _, handler := range h.subscribers {
		handlers = append(handlers, handler)
	}
	h.mu.Unlock()

	for _, handler := range handlers {
		handler(change)
	}
}

// OrderChangeListener bridges Postgres LISTEN/NOTIFY to in-process
// subscribers, implementing ports.OrderChangeFeed. One listener connection
// serves any number of subscribers.
//
// Delivery is best effort: notifications published while the listener
// connection is re-establishing are dropped, which consumers already
// tolerate because a change hint only means "re-fetch".
type OrderChangeListener struct {
	listener *pq.Listener
	logger   *slog.Logger
	hub      *changeHub

	done chan struct{}
}

// NewOrderChangeListener opens a dedicated LISTEN connection with the given
// DSN and starts dispatching change hints. Call Close to release the
// connection.
func NewOrderChangeListener(dsn string, logger *slog.Logger) (*OrderChangeListener, error) {
	reportProblem := func(_ pq.ListenerEventType, err error) {
		if err != nil {
			logger.Warn("order change listener connection problem", "error", err)
		}
	}

	listener := pq.NewListener(dsn, 10*time.Second, time.Minute, reportProblem)
	if err := listener.Listen(orderChangeChannel); err != nil {
		_ = listener.Close()
		return nil, err
	}

	l := &OrderChangeListener{
		listener: listener,
		logger:   logger,
		hub:      newChangeHub(),
		done:     make(chan struct{}),
	}

	go l.dispatch()

	return l, nil
}

// Subscribe registers a handler for order change hints. The handler runs on
// the listener's dispatch goroutine and must return quickly.
func (l *OrderChangeListener) Subscribe(handler func(ports.OrderChange)) ports.UnsubscribeFunc {
	return l.hub.subscribe(handler)
}

// Close stops dispatching and releases the database connection.
func (l *OrderChangeListener) Close() error {
	close(l.done)
	return l.listener.Close()
}

func (l *OrderChangeListener) dispatch() {
	for {
		select {
		case <-l.done:
			return
		case n, ok := <-l.listener.Notify:
			if !ok {
				return
			}
			// A nil notification signals the connection was re-established;
			// there is nothing to deliver.
			if n == nil {
				continue
			}

			var payload orderChangePayload
			if err := json.Unmarshal([]byte(n.Extra), &payload); err != nil {
				l.logger.Warn("order change payload malformed", "error", err)
				continue
			}

			l.hub.deliver(ports.OrderChange{OrderID: payload.OrderID, Op: payload.Op})
		}
	}
}
