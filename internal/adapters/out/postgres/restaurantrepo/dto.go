// Package restaurantrepo provides read access to the restaurant catalog.
// Restaurants are reference data seeded out of band; the marketplace only
// ever reads them for checkout fee lookups and display names.
package restaurantrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
)

// RestaurantDTO represents the database structure for restaurant rows.
type RestaurantDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:text"`
	Address     string    `gorm:"type:text"`
	DeliveryFee float64   `gorm:"type:numeric(10,2)"`
	CreatedAt   time.Time `gorm:"type:timestamptz"`
}

// TableName specifies the database table name for restaurant entities.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

func toDomain(dto RestaurantDTO) (*restaurant.Restaurant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return restaurant.RestoreRestaurant(
		id, dto.Name, dto.Address,
		kernel.NewMoneyFromFloat(dto.DeliveryFee), dto.CreatedAt,
	)
}
