package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider records.
// Rider rows are write-once and never contended; there is no Update.
type RiderRepository interface {
	// Add persists a new rider record to storage.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider by its unique identifier.
	// Returns errs.ErrObjectNotFound if no such rider exists.
	Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error)
}
