package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRiderDeliveriesQueryHandler serves the rider's delivery history. The
// rider is looked up first so an unknown id surfaces as not found rather
// than an empty list.
type GetRiderDeliveriesQueryHandler struct {
	db        *gorm.DB
	riderRepo ports.RiderRepository
}

// NewGetRiderDeliveriesQueryHandler creates a handler for rider delivery
// history queries.
func NewGetRiderDeliveriesQueryHandler(
	db *gorm.DB,
	riderRepo ports.RiderRepository,
) GetRiderDeliveriesQueryHandler {
	return GetRiderDeliveriesQueryHandler{db: db, riderRepo: riderRepo}
}

// Handle returns the rider's claimed orders newest first. Delivery fees
// count toward earnings only once the order is delivered.
func (h GetRiderDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetRiderDeliveriesQuery,
) (GetRiderDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRiderDeliveriesQueryResponse{}, err
	}

	rdr, err := h.riderRepo.Get(ctx, query.RiderID())
	if err != nil {
		return GetRiderDeliveriesQueryResponse{}, err
	}

	resp := GetRiderDeliveriesQueryResponse{
		RiderName:  rdr.Name(),
		Deliveries: make([]RiderDeliveryView, 0),
	}
	now := time.Now().UTC()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			r.name,
			o.customer_address,
			o.status,
			o.delivery_fee,
			o.total,
			o.created_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.rider_id = ?
		ORDER BY o.created_at DESC
	`, query.RiderID().String()).Rows()
	if err != nil {
		return GetRiderDeliveriesQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var view RiderDeliveryView
		var id uuid.UUID
		var deliveryFee, total float64
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&view.RestaurantName,
			&view.CustomerAddress,
			&view.Status,
			&deliveryFee,
			&total,
			&createdAt,
		)
		if err != nil {
			return GetRiderDeliveriesQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetRiderDeliveriesQueryResponse{}, idErr
		}

		view.OrderID = orderID
		view.ShortID = shortOrderID(orderID)
		view.DeliveryFeeCents = kernel.NewMoneyFromFloat(deliveryFee).Cents()
		view.TotalCents = kernel.NewMoneyFromFloat(total).Cents()
		view.PlacedAgo = timeAgo(createdAt, now)

		if view.Status == order.Delivered.String() {
			resp.EarnedCents += view.DeliveryFeeCents
		}

		resp.Deliveries = append(resp.Deliveries, view)
	}

	if err = rows.Err(); err != nil {
		return GetRiderDeliveriesQueryResponse{}, err
	}

	return resp, nil
}
