package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCustomerRewardsQueryHandler computes a customer's reward balance on
// demand. There is no stored points ledger: the balance is re-derived from
// delivered orders on every read, so it can never drift out of sync with
// order history.
type GetCustomerRewardsQueryHandler struct {
	db         *gorm.DB
	calculator services.RewardCalculator
}

// NewGetCustomerRewardsQueryHandler creates a handler for reward balance
// queries.
func NewGetCustomerRewardsQueryHandler(db *gorm.DB) GetCustomerRewardsQueryHandler {
	return GetCustomerRewardsQueryHandler{
		db:         db,
		calculator: services.NewRewardCalculator(),
	}
}

// Handle returns the customer's balance and contributing orders. Only
// delivered orders earn points; an email with no delivered orders gets an
// empty response with zero points.
func (h GetCustomerRewardsQueryHandler) Handle(
	ctx context.Context,
	query GetCustomerRewardsQuery,
) (GetCustomerRewardsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCustomerRewardsQueryResponse{}, err
	}

	resp := GetCustomerRewardsQueryResponse{
		Email:  query.Email(),
		Orders: make([]RewardOrderView, 0),
	}
	now := time.Now().UTC()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			total,
			created_at
		FROM orders
		WHERE lower(customer_email) = ? AND status = ?
		ORDER BY created_at DESC
	`, query.Email(), order.Delivered.String()).Rows()
	if err != nil {
		return GetCustomerRewardsQueryResponse{}, err
	}
	defer rows.Close()

	totals := make([]kernel.Money, 0)

	for rows.Next() {
		var id uuid.UUID
		var total float64
		var createdAt time.Time

		if err = rows.Scan(&id, &total, &createdAt); err != nil {
			return GetCustomerRewardsQueryResponse{}, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return GetCustomerRewardsQueryResponse{}, idErr
		}

		orderTotal := kernel.NewMoneyFromFloat(total)
		totals = append(totals, orderTotal)
		resp.Orders = append(resp.Orders, RewardOrderView{
			ShortID:      shortOrderID(orderID),
			TotalCents:   orderTotal.Cents(),
			PointsEarned: orderTotal.FloorDollars(),
			DeliveredAgo: timeAgo(createdAt, now),
		})
	}

	if err = rows.Err(); err != nil {
		return GetCustomerRewardsQueryResponse{}, err
	}

	resp.Points = h.calculator.PointsFromTotals(totals)

	return resp, nil
}
