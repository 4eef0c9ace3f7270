package services

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// RewardCalculator is a domain service computing customer reward points from
// order history.
//
// Points are a pure fold over delivered orders, one point per whole dollar
// of each delivered order's total, with no separate mutable ledger.
// Recomputing from the same history always yields the same value, so the
// calculation is safe to run on every dashboard load.
type RewardCalculator struct{}

// NewRewardCalculator creates a new RewardCalculator instance.
func NewRewardCalculator() RewardCalculator {
	return RewardCalculator{}
}

// Points returns the reward points earned across the given orders: the sum
// of floor(total in dollars) over every delivered order. Orders in any other
// status contribute nothing.
func (c RewardCalculator) Points(orders []*order.Order) int {
	totals := make([]kernel.Money, 0, len(orders))
	for _, o := range orders {
		if o == nil || o.Status() != order.Delivered {
			continue
		}
		totals = append(totals, o.Fees().Total())
	}
	return c.PointsFromTotals(totals)
}

// PointsFromTotals computes points directly from delivered-order totals.
// Used by read paths that already filtered to delivered orders in SQL.
func (RewardCalculator) PointsFromTotals(totals []kernel.Money) int {
	points := 0
	for _, total := range totals {
		points += total.FloorDollars()
	}
	return points
}
