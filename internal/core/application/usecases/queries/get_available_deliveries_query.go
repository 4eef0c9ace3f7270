package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetAvailableDeliveriesQueryIsNotConstructed = errors.New(
	"GetAvailableDeliveriesQuery must be created via NewGetAvailableDeliveriesQuery constructor",
)

// GetAvailableDeliveriesQuery retrieves orders open for riders to claim:
// ready orders with no rider attached yet, newest first.
type GetAvailableDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableDeliveriesQuery creates a query for the rider board.
// This is a parameterless query.
func NewGetAvailableDeliveriesQuery() GetAvailableDeliveriesQuery {
	return GetAvailableDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDeliveriesQueryIsNotConstructed)
}

// GetAvailableDeliveriesQueryResponse is one claimable delivery on the rider
// board. Money fields are in cents; PlacedAgo is a human phrase like
// "5 minutes ago".
type GetAvailableDeliveriesQueryResponse struct {
	OrderID           kernel.UUID
	RestaurantName    string
	RestaurantAddress string
	DeliveryAddress   string
	ItemCount         int
	DeliveryFeeCents  int64
	TotalCents        int64
	PlacedAgo         string
}
