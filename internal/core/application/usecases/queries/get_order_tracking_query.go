package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery retrieves the customer-facing tracking view for a
// single order.
type GetOrderTrackingQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderTrackingQuery creates a tracking query for the given order.
func NewGetOrderTrackingQuery(orderID kernel.UUID) (GetOrderTrackingQuery, error) {
	q := GetOrderTrackingQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setOrderID(orderID); err != nil {
		return GetOrderTrackingQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// OrderID returns the order being tracked.
func (q GetOrderTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q *GetOrderTrackingQuery) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.orderID = id
	return nil
}

// TrackingStep is one step on the tracking progress bar. Done steps were
// completed earlier; at most one step is Active at a time.
type TrackingStep struct {
	Label  string
	Done   bool
	Active bool
}

// GetOrderTrackingQueryResponse is the tracking page payload. ShortID is
// the first segment of the order id for display. Rider fields are empty
// until a rider claims the order. Declined orders carry Declined=true and
// an empty progress bar.
type GetOrderTrackingQueryResponse struct {
	OrderID        kernel.UUID
	ShortID        string
	RestaurantName string
	Status         string
	Declined       bool
	Steps          []TrackingStep
	RiderName      string
	RiderPhone     string
	SubtotalCents  int64
	DeliveryCents  int64
	ServiceCents   int64
	TotalCents     int64
	PlacedAgo      string
}
