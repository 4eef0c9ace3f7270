package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrRiderAlreadyAttached is returned when a claim targets an order that
	// already carries a rider. The rider id is set at most once, during the
	// ready -> claimed transition, and is never cleared or reassigned.
	ErrRiderAlreadyAttached = errors.New("order already has a rider attached")
)

// Order is the central aggregate: a single customer purchase from one
// restaurant, tracked through the five-state lifecycle plus the declined
// terminal state.
//
// Order maintains these invariants:
//   - Identity is immutable once created
//   - Customer info, line items, and the fee snapshot are frozen at creation
//   - Status only ever advances along the transition table in Status
//   - The rider id is set exactly once, on the ready -> claimed transition
//
// The struct uses private fields for encapsulation; all mutation goes
// through validated transition methods. The aggregate enforces transition
// legality in-process, while the persistence layer enforces the same
// preconditions with conditional writes, which is what makes concurrent
// actors safe without locks.
type Order struct {
	id           kernel.UUID
	restaurantID kernel.UUID
	customer     Customer
	items        []LineItem
	fees         Fees
	status       Status
	riderID      *kernel.UUID
	createdAt    time.Time

	isConstructed bool
}

// NewOrder creates a pending order from the validated checkout inputs. The
// fee snapshot must already be computed (see NewFees); the aggregate never
// recomputes it. The order starts in Pending with no rider attached.
//
// Example:
//
//	fees, _ := order.NewFees(order.SubtotalOf(items), restaurant.DeliveryFee())
//	o, err := order.NewOrder(kernel.NewUUID(), restaurant.ID(), customer, items, fees)
//	if err != nil {
//	    // handle validation error
//	}
func NewOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	customer Customer,
	items []LineItem,
	fees Fees,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setCustomer(customer),
		o.setItems(items),
		o.setFees(fees),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an order from persistence, including its current
// status, optional rider attachment, and original creation time. It validates
// the same invariants as NewOrder plus status/rider consistency.
func RestoreOrder(
	id kernel.UUID,
	restaurantID kernel.UUID,
	customer Customer,
	items []LineItem,
	fees Fees,
	status Status,
	riderID *kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setRestaurantID(restaurantID),
		o.setCustomer(customer),
		o.setItems(items),
		o.setFees(fees),
		o.setStatus(status, riderID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed. Call it when
// reconstructing orders from persistence to guarantee data integrity.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// RestaurantID returns the restaurant the order was placed with.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// Customer returns the customer snapshot attached at checkout.
func (o *Order) Customer() Customer {
	return o.customer
}

// Items returns a copy of the order's line items. The slice is copied so
// callers cannot mutate the frozen snapshot.
func (o *Order) Items() []LineItem {
	return slices.Clone(o.items)
}

// Fees returns the frozen fee snapshot.
func (o *Order) Fees() Fees {
	return o.fees
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Rider returns the attached rider's id, or nil if no rider has claimed the
// order yet.
func (o *Order) Rider() *kernel.UUID {
	return o.riderID
}

// CreatedAt returns the order's creation time in UTC.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsActive reports whether the order still needs attention from some actor.
func (o *Order) IsActive() bool {
	return o.status.IsActive()
}

// ProgressIndex returns the order's step on the happy path, 0 through 4, or
// -1 for declined orders.
func (o *Order) ProgressIndex() int {
	return o.status.ProgressIndex()
}

// Confirm accepts the order on behalf of the restaurant.
// Allowed only from Pending.
func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// MarkReady marks the order as prepared and available for riders to claim.
// Allowed only from Confirmed.
func (o *Order) MarkReady() error {
	newStatus, err := o.status.MarkReady()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Decline turns the order down on behalf of the restaurant. Allowed only
// from Pending; declined is a terminal state distinct from delivered.
func (o *Order) Decline() error {
	newStatus, err := o.status.Decline()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

// Claim attaches a rider to the order and advances it to Claimed.
//
// Business rules:
//   - The rider id must be valid
//   - The order must be in Ready status
//   - No rider may already be attached; once set the rider id never changes
//
// In-process validation is only half of the guarantee: the persistence layer
// performs the same check as a conditional write, so two independent riders
// racing over the same order resolve with exactly one winner.
func (o *Order) Claim(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}

	if o.riderID != nil {
		return fmt.Errorf("%w: rider %s", ErrRiderAlreadyAttached, o.riderID)
	}

	newStatus, err := o.status.Claim()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.riderID = &riderID
	return nil
}

// Deliver marks the order as delivered by its rider.
//
// Delivering an already-delivered order is a no-op success, not an error:
// network retries of the final confirmation must not surface as failures to
// the rider. Any other starting state besides Claimed is an invalid
// transition.
func (o *Order) Deliver() error {
	if o.status == Delivered {
		return nil
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("order id: %w", err)
	}
	o.id = id
	return nil
}

func (o *Order) setRestaurantID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return fmt.Errorf("restaurant id: %w", err)
	}
	o.restaurantID = id
	return nil
}

func (o *Order) setCustomer(c Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	o.customer = c
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("line items")
	}
	for _, li := range items {
		if err := li.Validate(); err != nil {
			return err
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setFees(f Fees) error {
	if err := f.Validate(); err != nil {
		return err
	}
	o.fees = f
	return nil
}

func (o *Order) setStatus(s Status, riderID *kernel.UUID) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := s.ValidateCanHaveRider(riderID != nil); err != nil {
		return err
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return fmt.Errorf("rider id: %w", err)
		}
		id := *riderID
		o.riderID = &id
	}
	o.status = s
	return nil
}
