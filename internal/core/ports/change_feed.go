package ports

// OrderChange is a hint that an order row was inserted or updated. It
// deliberately carries no field values: change notifications are
// at-least-once and best-effort ordered, so consumers must treat each one as
// "something changed, re-fetch authoritative state", never as a diff to
// apply blindly.
type OrderChange struct {
	OrderID string
	Op      string // "INSERT" or "UPDATE"
}

// UnsubscribeFunc detaches a change subscriber. After it returns, the
// handler receives no further callbacks.
type UnsubscribeFunc func()

// OrderChangeFeed delivers order change hints to in-process subscribers
// (the websocket relay, dashboard refresh triggers). Handlers must be quick;
// any re-fetching belongs on the subscriber's own goroutine.
type OrderChangeFeed interface {
	Subscribe(handler func(OrderChange)) UnsubscribeFunc
}
