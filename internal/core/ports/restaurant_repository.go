package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/restaurant"
)

// RestaurantRepository defines the read-only contract for restaurant data.
// The core never creates or mutates restaurants; catalog management is an
// external concern.
type RestaurantRepository interface {
	// Get retrieves a restaurant by its unique identifier.
	// Returns errs.ErrObjectNotFound if no such restaurant exists.
	Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error)
}
