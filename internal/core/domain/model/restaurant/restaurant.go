// Package restaurant contains the Restaurant read model. The core never
// mutates restaurants: they are consumed for display, for scoping dashboard
// views, and for the delivery fee applied at checkout. Menu management is an
// external concern.
package restaurant

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrRestaurantIsNotConstructed is returned when a Restaurant instance was
// not created through RestoreRestaurant.
var ErrRestaurantIsNotConstructed = errors.New("Restaurant must be created via RestoreRestaurant")

// Restaurant is a read-only view of a marketplace restaurant.
type Restaurant struct {
	id          kernel.UUID
	name        string
	address     string
	deliveryFee kernel.Money
	createdAt   time.Time

	isConstructed bool
}

// RestoreRestaurant reconstructs a restaurant from persistence.
func RestoreRestaurant(id kernel.UUID, name, address string, deliveryFee kernel.Money, createdAt time.Time) (*Restaurant, error) {
	r := &Restaurant{
		name:          strings.TrimSpace(name),
		address:       strings.TrimSpace(address),
		deliveryFee:   deliveryFee,
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	var err error
	if idErr := id.Validate(); idErr != nil {
		err = errors.Join(err, idErr)
	}
	if r.name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("restaurant name"))
	}
	if feeErr := deliveryFee.Validate(); feeErr != nil {
		err = errors.Join(err, feeErr)
	}
	if err != nil {
		return nil, err
	}

	r.id = id
	return r, nil
}

// Validate ensures the Restaurant instance was properly constructed.
func (r *Restaurant) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRestaurantIsNotConstructed
	}
	return nil
}

// ID returns the restaurant's unique identifier.
func (r *Restaurant) ID() kernel.UUID {
	return r.id
}

// Name returns the restaurant's display name.
func (r *Restaurant) Name() string {
	return r.name
}

// Address returns the pickup address.
func (r *Restaurant) Address() string {
	return r.address
}

// DeliveryFee returns the flat delivery fee applied to this restaurant's
// orders at checkout.
func (r *Restaurant) DeliveryFee() kernel.Money {
	return r.deliveryFee
}

// CreatedAt returns the record's creation time in UTC.
func (r *Restaurant) CreatedAt() time.Time {
	return r.createdAt
}
