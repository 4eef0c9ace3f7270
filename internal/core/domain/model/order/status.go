package order

import (
	"errors"
	"fmt"

	"marketplace/internal/pkg/errs"
)

// ErrInvalidTransition is returned when an actor attempts a status change
// that is not allowed from the order's current state. It is never fatal:
// callers re-fetch the order and retry from authoritative state.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order. It implements a state
// machine with a single forward path and two terminal states:
//
//	pending ──> confirmed ──> ready ──> claimed ──> delivered
//	   │
//	   └──> declined
//
// The restaurant drives pending→confirmed→ready (and pending→declined), a
// rider drives ready→claimed→delivered. No transition ever moves backwards
// or skips a state.
//
// Status is a value object that validates state transitions and provides the
// exact wire tokens used for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status set by the checkout flow.
	// Orders in this status are waiting for the restaurant to accept them.
	Pending

	// Confirmed indicates the restaurant has accepted the order
	// and is preparing it.
	Confirmed

	// Ready indicates the order is prepared and waiting for a rider to
	// claim the delivery.
	Ready

	// Claimed indicates a rider has attached to the order and is
	// delivering it. The rider id is set exactly once, on this transition.
	Claimed

	// Delivered indicates the order reached the customer.
	// This is the success terminal state.
	Delivered

	// Declined indicates the restaurant turned the order down while it was
	// still pending. This is a terminal state distinct from Delivered, so a
	// declined order can never be mistaken for a fulfilled one.
	Declined
)

// progressPath is the happy-path order of states, indexed by progress step.
var progressPath = [...]Status{Pending, Confirmed, Ready, Claimed, Delivered}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Ready:     "ready",
		Claimed:   "claimed",
		Delivered: "delivered",
		Declined:  "declined",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Confirmed: "confirmed",
		Ready:     "ready",
		Claimed:   "claimed",
		Delivered: "delivered",
		Declined:  "declined",
	}
}

// StatusFromString parses a persisted wire token back into a Status.
// Returns an error for anything outside the defined token set.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status token", s),
	)
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire token for the status. These exact tokens are the
// only status representation any persistence layer may use.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Declined
}

// IsActive reports whether the order still needs attention from some actor.
// Active orders are the sole input to tracking views and open-revenue
// aggregates.
func (s Status) IsActive() bool {
	return !s.IsTerminal() && s != Unknown
}

// ProgressIndex maps the status to its step on the happy path, 0 through 4.
// Rendering rule: a step is done when its index is less than the current
// order's index, and active when equal. Declined orders are off the happy
// path and return -1.
func (s Status) ProgressIndex() int {
	for i, step := range progressPath {
		if s == step {
			return i
		}
	}
	return -1
}

func (s Status) transition(to, allowedFrom Status) (Status, error) {
	if s != allowedFrom {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, to)
	}
	return to, nil
}

// Confirm transitions pending -> confirmed. Restaurant action.
func (s Status) Confirm() (Status, error) {
	return s.transition(Confirmed, Pending)
}

// MarkReady transitions confirmed -> ready. Restaurant action.
func (s Status) MarkReady() (Status, error) {
	return s.transition(Ready, Confirmed)
}

// Decline transitions pending -> declined. Restaurant action. Orders that
// have already been confirmed cannot be declined.
func (s Status) Decline() (Status, error) {
	return s.transition(Declined, Pending)
}

// Claim transitions ready -> claimed. Rider action, performed through the
// claim protocol: the aggregate additionally requires that no rider is
// attached yet, and the store enforces the same precondition on write.
func (s Status) Claim() (Status, error) {
	return s.transition(Claimed, Ready)
}

// Deliver transitions claimed -> delivered. Rider action.
func (s Status) Deliver() (Status, error) {
	return s.transition(Delivered, Claimed)
}

// ValidateCanHaveRider validates consistency between status and rider
// attachment: only claimed and delivered orders carry a rider, and both must.
func (s Status) ValidateCanHaveRider(hasRider bool) error {
	if hasRider && s != Claimed && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a rider", s),
		)
	}

	if !hasRider && (s == Claimed || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no rider", s),
		)
	}

	return nil
}
