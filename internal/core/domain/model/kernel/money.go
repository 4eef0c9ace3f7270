package kernel

import (
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in integer cents.
// Keeping amounts in minor units avoids floating point drift; persistence
// adapters convert to and from NUMERIC(10,2) columns at the boundary, so
// exact cent amounts round-trip without loss.
//
// Money is immutable. Arithmetic returns new values.
//
// Example:
//
//	subtotal := kernel.NewMoneyFromFloat(40.00)
//	serviceFee := subtotal.Percent(0.05) // $2.00, rounded to the cent
//	total := subtotal.Add(serviceFee)
type Money int64

// NewMoneyFromFloat creates Money from a dollar amount, rounding to the
// nearest cent.
func NewMoneyFromFloat(dollars float64) Money {
	return Money(math.Round(dollars * 100.0))
}

// NewMoneyFromCents creates Money from an amount already expressed in cents.
func NewMoneyFromCents(cents int64) Money {
	return Money(cents)
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return int64(m)
}

// Float64 returns the amount in dollars. Intended only for display and for
// persistence adapters; domain arithmetic stays in cents.
func (m Money) Float64() float64 {
	return float64(m) / 100.0
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// Percent returns the given fraction of the amount, rounded to the nearest
// cent. Rounding happens here, before any subsequent summing, so derived fees
// are reproducible to the cent on re-display.
func (m Money) Percent(rate float64) Money {
	return Money(math.Round(float64(m) * rate))
}

// FloorDollars returns the amount rounded down to whole dollars.
func (m Money) FloorDollars() int {
	return int(math.Floor(float64(m) / 100.0))
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// Validate returns an error for negative amounts. Order fees and totals are
// never negative in this domain.
func (m Money) Validate() error {
	if m.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%d cents is negative", int64(m)))
	}
	return nil
}

// String implements fmt.Stringer, formatting the amount as dollars with two
// decimal places.
func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.Float64())
}
