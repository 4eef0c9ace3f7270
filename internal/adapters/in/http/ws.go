package http

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"marketplace/internal/core/ports"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool {
		// Surfaces are served from other origins in development.
		return true
	},
}

// wsMessage is the change hint pushed to websocket clients. Clients re-fetch
// the order via the REST API; the message never carries field values.
type wsMessage struct {
	Type      string `json:"type"`
	OrderID   string `json:"order_id"`
	Op        string `json:"op"`
	Timestamp string `json:"timestamp"`
}

// OrderChangeRelay fans order change hints out to connected websocket
// clients. It subscribes to the change feed on construction and drops
// messages for slow clients rather than blocking the feed.
type OrderChangeRelay struct {
	logger *slog.Logger

	mu      sync.Mutex
	clients map[*wsClient]struct{}

	unsubscribe ports.UnsubscribeFunc
}

type wsClient struct {
	conn *websocket.Conn
	send chan wsMessage
}

// NewOrderChangeRelay creates a relay subscribed to the given feed. Call
// Close to detach from the feed and disconnect clients.
func NewOrderChangeRelay(feed ports.OrderChangeFeed, logger *slog.Logger) *OrderChangeRelay {
	relay := &OrderChangeRelay{
		logger:  logger,
		clients: make(map[*wsClient]struct{}),
	}

	relay.unsubscribe = feed.Subscribe(relay.broadcast)

	return relay
}

// Handle upgrades GET /ws/orders to a websocket connection.
func (r *OrderChangeRelay) Handle(ctx echo.Context) error {
	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		r.logger.Warn("websocket upgrade failed", "error", err)
		return nil
	}

	client := &wsClient{
		conn: conn,
		send: make(chan wsMessage, 64),
	}

	r.mu.Lock()
	r.clients[client] = struct{}{}
	r.mu.Unlock()

	go r.writePump(client)
	go r.readPump(client)

	return nil
}

// Close detaches from the change feed and closes every client connection.
func (r *OrderChangeRelay) Close() {
	r.unsubscribe()

	r.mu.Lock()
	defer r.mu.Unlock()
	for client := range r.clients {
		close(client.send)
		delete(r.clients, client)
	}
}

func (r *OrderChangeRelay) broadcast(change ports.OrderChange) {
	msg := wsMessage{
		Type:      "order_change",
		OrderID:   change.OrderID,
		Op:        change.Op,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for client := range r.clients {
		select {
		case client.send <- msg:
		default:
			// Slow client: drop it rather than stall the feed.
			close(client.send)
			delete(r.clients, client)
		}
	}
}

func (r *OrderChangeRelay) drop(client *wsClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[client]; ok {
		close(client.send)
		delete(r.clients, client)
	}
}

func (r *OrderChangeRelay) readPump(client *wsClient) {
	defer func() {
		r.drop(client)
		_ = client.conn.Close()
	}()

	client.conn.SetReadLimit(512)
	_ = client.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	})

	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (r *OrderChangeRelay) writePump(client *wsClient) {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		_ = client.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
