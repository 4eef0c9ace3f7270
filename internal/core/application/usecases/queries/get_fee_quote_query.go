package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetFeeQuoteQueryIsNotConstructed = errors.New(
	"GetFeeQuoteQuery must be created via NewGetFeeQuoteQuery constructor",
)

// GetFeeQuoteQuery computes the fee breakdown for a cart before checkout,
// so the cart page can show the exact numbers the order will be created
// with. The quote uses the same fee arithmetic as checkout itself.
type GetFeeQuoteQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	items        []order.LineItem

	guard guard.ConstructorGuard
}

// NewGetFeeQuoteQuery creates a quote query for the given restaurant and
// cart.
func NewGetFeeQuoteQuery(restaurantID kernel.UUID, items []order.LineItem) (GetFeeQuoteQuery, error) {
	q := GetFeeQuoteQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		q.setRestaurantID(restaurantID),
		q.setItems(items),
	); err != nil {
		return GetFeeQuoteQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetFeeQuoteQuery) Validate() error {
	return q.guard.Validate(ErrGetFeeQuoteQueryIsNotConstructed)
}

// RestaurantID returns the restaurant whose delivery fee applies.
func (q GetFeeQuoteQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// Items returns the cart being quoted.
func (q GetFeeQuoteQuery) Items() []order.LineItem {
	return q.items
}

func (q *GetFeeQuoteQuery) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	q.restaurantID = id
	return nil
}

func (q *GetFeeQuoteQuery) setItems(items []order.LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("cart items")
	}
	for _, li := range items {
		if err := li.Validate(); err != nil {
			return err
		}
	}
	q.items = items
	return nil
}

// GetFeeQuoteQueryResponse is the quoted breakdown in cents.
type GetFeeQuoteQueryResponse struct {
	SubtotalCents int64
	DeliveryCents int64
	ServiceCents  int64
	TotalCents    int64
}
