package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetRiderDeliveriesQueryIsNotConstructed = errors.New(
	"GetRiderDeliveriesQuery must be created via NewGetRiderDeliveriesQuery constructor",
)

// GetRiderDeliveriesQuery retrieves a rider's delivery history: every order
// they have claimed, in flight or delivered.
type GetRiderDeliveriesQuery struct { //nolint:recvcheck //using for validation
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRiderDeliveriesQuery creates a delivery history query for the given
// rider.
func NewGetRiderDeliveriesQuery(riderID kernel.UUID) (GetRiderDeliveriesQuery, error) {
	q := GetRiderDeliveriesQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setRiderID(riderID); err != nil {
		return GetRiderDeliveriesQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRiderDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderDeliveriesQueryIsNotConstructed)
}

// RiderID returns the rider the history is for.
func (q GetRiderDeliveriesQuery) RiderID() kernel.UUID {
	return q.riderID
}

func (q *GetRiderDeliveriesQuery) setRiderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.riderID = id
	return nil
}

// RiderDeliveryView is one claimed order in the rider's history.
type RiderDeliveryView struct {
	OrderID          kernel.UUID
	ShortID          string
	RestaurantName   string
	CustomerAddress  string
	Status           string
	DeliveryFeeCents int64
	TotalCents       int64
	PlacedAgo        string
}

// GetRiderDeliveriesQueryResponse is the rider's delivery history, newest
// first, plus the fees earned on the orders they have actually delivered.
type GetRiderDeliveriesQueryResponse struct {
	RiderName   string
	Deliveries  []RiderDeliveryView
	EarnedCents int64
}
