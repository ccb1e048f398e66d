package order

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a delivery from one store to one customer. It is the aggregate
// root that owns the order lifecycle from Pending through Delivered.
//
// Order follows these invariants:
//   - id, customer and store are valid IDs of their respective kinds
//   - a courier is set iff the status is Assigned, InTransit or Delivered
//   - status only moves forward (see Status)
//   - can only be created through NewOrder
type Order struct {
	// id is the unique identifier for the order
	id kernel.ID

	customerID kernel.ID
	storeID    kernel.ID

	// courierID is the assigned courier's ID (zero while pending)
	courierID kernel.ID

	// status represents the current state in the order lifecycle
	status Status

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates a Pending order of customerID from storeID.
//
// Parameters:
//   - id: Unique identifier of kind kernel.KindOrder
//   - customerID: the ordering customer, kind kernel.KindCustomer
//   - storeID: the store that prepares the order, kind kernel.KindStore
//   - createdAt: creation timestamp, must not be zero
//
// Returns:
//   - *Order: The created order in Pending status with no courier
//   - error: Validation errors joined with errors.Join
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewID(kernel.KindOrder), customerID, storeID, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
func NewOrder(id, customerID, storeID kernel.ID, createdAt time.Time) (*Order, error) {
	order := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setCustomer(customerID),
		order.setStore(storeID),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder
// and that a courier is set exactly when the status requires one.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	if err := o.guard.Validate(ErrOrderIsNotConstructed); err != nil {
		return err
	}
	return o.status.ValidateCanHaveCourier(!o.courierID.IsZero())
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.ID {
	return o.id
}

// Customer returns the id of the ordering customer.
func (o *Order) Customer() kernel.ID {
	return o.customerID
}

// Store returns the id of the store the order is picked up from.
func (o *Order) Store() kernel.ID {
	return o.storeID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Courier returns the assigned courier. ok is false while the order is pending.
func (o *Order) Courier() (courierID kernel.ID, ok bool) {
	return o.courierID, !o.courierID.IsZero()
}

// IsPending reports whether the order still waits for a courier.
func (o *Order) IsPending() bool {
	return o.status == Pending
}

// IsActive reports whether the order is not delivered yet.
func (o *Order) IsActive() bool {
	return o.status.IsActive()
}

// Assign hands the order to a courier.
//
// Business rules:
//   - the courier ID must be a valid courier id
//   - the order must be Pending; a second Assign fails with errs.ErrStateIsInvalid
//
// Example:
//
//	if err := o.Assign(courierID); err != nil {
//	    // errors.Is(err, errs.ErrStateIsInvalid) for non pending orders
//	}
func (o *Order) Assign(courierID kernel.ID) error {
	if err := courierID.ValidateKind(kernel.KindCourier); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = courierID
	return nil
}

// BeginTransit records that the courier picked the order up.
// Only Assigned orders can begin transit.
func (o *Order) BeginTransit() error {
	newStatus, err := o.status.BeginTransit()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Deliver completes the order. Assigned and InTransit orders can be delivered;
// Delivered is terminal.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Clone returns an independent copy of the order.
func (o *Order) Clone() *Order {
	c := *o
	return &c
}

func (o *Order) setID(id kernel.ID) error {
	if err := id.ValidateKind(kernel.KindOrder); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customerID kernel.ID) error {
	if err := customerID.ValidateKind(kernel.KindCustomer); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setStore(storeID kernel.ID) error {
	if err := storeID.ValidateKind(kernel.KindStore); err != nil {
		return err
	}
	o.storeID = storeID
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}
