package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetFeeQuoteQueryHandler computes the checkout fee preview. It shares the
// fee arithmetic with order creation through the domain Fees constructor,
// so a quoted cart and the order created from it always show identical
// numbers.
type GetFeeQuoteQueryHandler struct {
	db *gorm.DB
}

// NewGetFeeQuoteQueryHandler creates a handler for fee quote queries.
func NewGetFeeQuoteQueryHandler(db *gorm.DB) GetFeeQuoteQueryHandler {
	return GetFeeQuoteQueryHandler{db: db}
}

// Handle looks up the restaurant's delivery fee and computes the breakdown.
// Returns errs.ErrObjectNotFound for an unknown restaurant.
func (h GetFeeQuoteQueryHandler) Handle(
	ctx context.Context,
	query GetFeeQuoteQuery,
) (GetFeeQuoteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetFeeQuoteQueryResponse{}, err
	}

	var deliveryFee float64
	row := h.db.WithContext(ctx).Raw(`
		SELECT delivery_fee FROM restaurants WHERE id = ?
	`, query.RestaurantID().String()).Row()
	if err := row.Scan(&deliveryFee); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetFeeQuoteQueryResponse{},
				errs.NewObjectNotFoundError("restaurant", query.RestaurantID().String())
		}
		return GetFeeQuoteQueryResponse{}, err
	}

	fees, err := order.NewFees(
		order.SubtotalOf(query.Items()), kernel.NewMoneyFromFloat(deliveryFee))
	if err != nil {
		return GetFeeQuoteQueryResponse{}, err
	}

	return GetFeeQuoteQueryResponse{
		SubtotalCents: fees.Subtotal().Cents(),
		DeliveryCents: fees.DeliveryFee().Cents(),
		ServiceCents:  fees.ServiceFee().Cents(),
		TotalCents:    fees.Total().Cents(),
	}, nil
}
