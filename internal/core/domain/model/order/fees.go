package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ServiceFeeRate is the flat platform fee applied to the food subtotal at
// checkout time.
const ServiceFeeRate = 0.05

// ErrFeesAreNotConstructed is returned when a Fees instance was not created
// through NewFees or RestoreFees.
var ErrFeesAreNotConstructed = errors.New("Fees must be created via NewFees or RestoreFees")

// Fees is the frozen monetary snapshot of an order, computed once at checkout
// and never re-derived from line items afterwards. The service fee is rounded
// to the cent before summing, so the total is reproducible to the cent across
// re-display:
//
//	serviceFee = round(subtotal * 0.05)
//	total      = subtotal + deliveryFee + serviceFee
type Fees struct {
	subtotal    kernel.Money
	deliveryFee kernel.Money
	serviceFee  kernel.Money
	total       kernel.Money

	isConstructed bool
}

// NewFees computes the fee snapshot for a checkout from the cart subtotal and
// the restaurant's delivery fee. Both inputs must be non-negative.
func NewFees(subtotal, deliveryFee kernel.Money) (Fees, error) {
	if err := errors.Join(subtotal.Validate(), deliveryFee.Validate()); err != nil {
		return Fees{}, errs.NewValueIsInvalidErrorWithCause("fees", err)
	}

	serviceFee := subtotal.Percent(ServiceFeeRate)
	return Fees{
		subtotal:      subtotal,
		deliveryFee:   deliveryFee,
		serviceFee:    serviceFee,
		total:         subtotal.Add(deliveryFee).Add(serviceFee),
		isConstructed: true,
	}, nil
}

// RestoreFees reconstructs a fee snapshot from persistence. The stored total
// must equal the sum of its parts; a mismatch means the snapshot was
// corrupted outside the domain.
func RestoreFees(subtotal, deliveryFee, serviceFee, total kernel.Money) (Fees, error) {
	if err := errors.Join(
		subtotal.Validate(),
		deliveryFee.Validate(),
		serviceFee.Validate(),
		total.Validate(),
	); err != nil {
		return Fees{}, errs.NewValueIsInvalidErrorWithCause("fees", err)
	}

	if want := subtotal.Add(deliveryFee).Add(serviceFee); total != want {
		return Fees{}, errs.NewValueIsInvalidErrorWithCause(
			"fees",
			fmt.Errorf("total %s does not equal subtotal %s + delivery %s + service %s",
				total, subtotal, deliveryFee, serviceFee),
		)
	}

	return Fees{
		subtotal:      subtotal,
		deliveryFee:   deliveryFee,
		serviceFee:    serviceFee,
		total:         total,
		isConstructed: true,
	}, nil
}

// Validate ensures the Fees instance was properly constructed.
func (f Fees) Validate() error {
	if !f.isConstructed {
		return ErrFeesAreNotConstructed
	}
	return nil
}

// Subtotal returns the food subtotal.
func (f Fees) Subtotal() kernel.Money {
	return f.subtotal
}

// DeliveryFee returns the restaurant's delivery fee, earned by the rider.
func (f Fees) DeliveryFee() kernel.Money {
	return f.deliveryFee
}

// ServiceFee returns the platform fee, rounded to the cent at checkout.
func (f Fees) ServiceFee() kernel.Money {
	return f.serviceFee
}

// Total returns the charged total.
func (f Fees) Total() kernel.Money {
	return f.total
}
