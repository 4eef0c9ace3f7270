package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetRestaurantOrdersQueryIsNotConstructed = errors.New(
	"GetRestaurantOrdersQuery must be created via NewGetRestaurantOrdersQuery constructor",
)

// GetRestaurantOrdersQuery retrieves a restaurant's order dashboard: its
// orders newest first plus headline numbers for the active workload.
type GetRestaurantOrdersQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRestaurantOrdersQuery creates a dashboard query for the given
// restaurant.
func NewGetRestaurantOrdersQuery(restaurantID kernel.UUID) (GetRestaurantOrdersQuery, error) {
	q := GetRestaurantOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setRestaurantID(restaurantID); err != nil {
		return GetRestaurantOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRestaurantOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetRestaurantOrdersQueryIsNotConstructed)
}

// RestaurantID returns the restaurant the dashboard is for.
func (q GetRestaurantOrdersQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

func (q *GetRestaurantOrdersQuery) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.restaurantID = id
	return nil
}

// RestaurantOrderView is one row on the restaurant dashboard.
type RestaurantOrderView struct {
	OrderID      kernel.UUID
	CustomerName string
	ItemCount    int
	Status       string
	TotalCents   int64
	PlacedAgo    string
}

// GetRestaurantOrdersQueryResponse is the dashboard payload: the order list
// newest first, how many orders are currently in flight, and the revenue
// those in-flight orders represent.
type GetRestaurantOrdersQueryResponse struct {
	Orders           []RestaurantOrderView
	ActiveCount      int
	OpenRevenueCents int64
}
