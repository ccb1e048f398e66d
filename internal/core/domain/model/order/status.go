package order

import (
	"fmt"

	"lastmile/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a forward-only state machine:
//
//	Pending ──> Assigned ──> InTransit ──> Delivered
//	               │                          ▲
//	               └──────────────────────────┘
//
// Delivered is terminal. No transition moves an order backwards.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status. The order waits for a courier.
	Pending

	// Assigned indicates a courier has accepted the order.
	Assigned

	// InTransit indicates the courier picked the order up at the store.
	InTransit

	// Delivered is the terminal status.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Assigned:  "assigned",
		InTransit: "in-transit",
		Delivered: "delivered",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Assigned:  "assigned",
		InTransit: "in-transit",
		Delivered: "delivered",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status ("pending", "in-transit", ...).
// It is safe to call on invalid values and returns "unknown" for them.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsActive reports whether the order still occupies its customer, i.e. it is
// in a valid state other than Delivered.
func (s Status) IsActive() bool {
	return s.Validate() == nil && s != Delivered
}

// ValidateCanHaveCourier checks the pairing between status and courier assignment:
// Pending orders have no courier, every later status has one.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}

	if !courier && (s == Assigned || s == InTransit || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}

	return nil
}

// Assign transitions Pending to Assigned.
//
// Returns:
//   - (Assigned, nil) on valid transition
//   - (0, *errs.StateIsInvalidError) from any other status, including Assigned
//
// Example:
//
//	next, err := order.Pending.Assign() // Assigned, nil
//	_, err = next.Assign()              // state is invalid
func (s Status) Assign() (Status, error) {
	if s != Pending {
		return 0, errs.NewStateIsInvalidError("order", s.String(), "assign")
	}
	return Assigned, nil
}

// BeginTransit transitions Assigned to InTransit.
func (s Status) BeginTransit() (Status, error) {
	if s != Assigned {
		return 0, errs.NewStateIsInvalidError("order", s.String(), "begin transit of")
	}
	return InTransit, nil
}

// Deliver transitions Assigned or InTransit to Delivered.
// Delivering straight from Assigned is allowed for couriers that never report pickup.
func (s Status) Deliver() (Status, error) {
	if s != Assigned && s != InTransit {
		return 0, errs.NewStateIsInvalidError("order", s.String(), "deliver")
	}
	return Delivered, nil
}
