// Package ports defines the contracts between the domain core and
// infrastructure: repositories, the unit of work, the notification
// dispatcher, and the order change feed. These interfaces enable dependency
// inversion and testability.
package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Orders are written once at checkout; every mutation after that goes
// through a conditional method that encodes the compare-and-set
// precondition making concurrent actors safe, returning
// errs.ErrConditionNotMet when the expected prior state no longer holds.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound if no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// UpdateStatusIf advances the order's status with a conditional write:
	// the update applies only if the stored status still equals from at
	// write time. Returns errs.ErrConditionNotMet when it does not.
	UpdateStatusIf(ctx context.Context, id kernel.UUID, from, to order.Status) error

	// Claim atomically attaches a rider to an order and advances it to
	// claimed, conditioned on the order still being ready with no rider
	// attached at write time. Returns errs.ErrConditionNotMet when another
	// rider won the race. This single conditional write is the entire
	// mutual-exclusion mechanism for claims.
	Claim(ctx context.Context, id, riderID kernel.UUID) error

	// GetAllForCustomer retrieves every order placed with the given
	// customer email, newest first. Used for the rewards fold.
	GetAllForCustomer(ctx context.Context, email string) ([]*order.Order, error)

	// GetStalePending retrieves orders still pending that were created
	// before the given cutoff. Used by the ops reminder job.
	GetStalePending(ctx context.Context, olderThan time.Time) ([]*order.Order, error)
}
