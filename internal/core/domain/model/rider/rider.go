// Package rider contains the Rider entity: the ephemeral identity a courier
// supplies when claiming a delivery. The system deliberately keeps no
// persistent rider accounts; a fresh record is created for every claim
// attempt, and records orphaned by lost claim races are left in place.
package rider

import (
	"errors"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrRiderIsNotConstructed is returned when a Rider instance was not created
// through NewRider or RestoreRider.
var ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider or RestoreRider")

// Rider is a write-once identity record attached to at most one order.
// Created immediately before a claim attempt; if the claim loses the race
// the record stays behind unused, which is an accepted leak rather than a
// correctness bug.
type Rider struct {
	id        kernel.UUID
	name      string
	phone     string
	createdAt time.Time

	isConstructed bool
}

// NewRider creates a rider from the board form input. Name and phone are
// required and trimmed of surrounding whitespace; blank input fails before
// any claim is attempted.
func NewRider(id kernel.UUID, name, phone string) (*Rider, error) {
	r := &Rider{
		name:          strings.TrimSpace(name),
		phone:         strings.TrimSpace(phone),
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	var err error
	if idErr := id.Validate(); idErr != nil {
		err = errors.Join(err, idErr)
	}
	if r.name == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("rider name"))
	}
	if r.phone == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("rider phone"))
	}
	if err != nil {
		return nil, err
	}

	r.id = id
	return r, nil
}

// RestoreRider reconstructs a rider from persistence.
func RestoreRider(id kernel.UUID, name, phone string, createdAt time.Time) (*Rider, error) {
	r, err := NewRider(id, name, phone)
	if err != nil {
		return nil, err
	}
	r.createdAt = createdAt.UTC()
	return r, nil
}

// Validate ensures the Rider instance was properly constructed.
func (r *Rider) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRiderIsNotConstructed
	}
	return nil
}

// ID returns the rider's unique identifier.
func (r *Rider) ID() kernel.UUID {
	return r.id
}

// Name returns the rider's display name.
func (r *Rider) Name() string {
	return r.name
}

// Phone returns the rider's phone number.
func (r *Rider) Phone() string {
	return r.phone
}

// CreatedAt returns the record's creation time in UTC.
func (r *Rider) CreatedAt() time.Time {
	return r.createdAt
}
