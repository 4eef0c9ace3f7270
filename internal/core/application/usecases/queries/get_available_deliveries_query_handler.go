package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableDeliveriesQueryHandler serves the rider board: every order a
// rider could claim right now. The board is a snapshot; whether a claim on
// a listed order still succeeds is decided by the conditional write at
// claim time, never by this read.
type GetAvailableDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableDeliveriesQueryHandler creates a handler for rider board
// queries.
func NewGetAvailableDeliveriesQueryHandler(db *gorm.DB) GetAvailableDeliveriesQueryHandler {
	return GetAvailableDeliveriesQueryHandler{db: db}
}

// Handle returns ready orders with no rider attached, newest first.
func (h GetAvailableDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDeliveriesQuery,
) ([]GetAvailableDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetAvailableDeliveriesQueryResponse, 0)
	now := time.Now().UTC()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			r.name,
			r.address,
			o.customer_address,
			jsonb_array_length(o.items),
			o.delivery_fee,
			o.total,
			o.created_at
		FROM orders o
		JOIN restaurants r ON r.id = o.restaurant_id
		WHERE o.status = ? AND o.rider_id IS NULL
		ORDER BY o.created_at DESC
	`, order.Ready.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetAvailableDeliveriesQueryResponse
		var id uuid.UUID
		var deliveryFee, total float64
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&resp.RestaurantName,
			&resp.RestaurantAddress,
			&resp.DeliveryAddress,
			&resp.ItemCount,
			&deliveryFee,
			&total,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.OrderID = orderID
		resp.DeliveryFeeCents = kernel.NewMoneyFromFloat(deliveryFee).Cents()
		resp.TotalCents = kernel.NewMoneyFromFloat(total).Cents()
		resp.PlacedAgo = timeAgo(createdAt, now)
		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
