package customer

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when attempting to create a customer without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCustomerIsNotConstructed is returned when using an improperly initialized Customer.
	ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer constructor")
)

// Customer is the recipient of orders.
//
// Business rules:
//   - a customer has at most one active (non delivered) order at a time
//   - HasActiveOrder is true iff ActiveOrder is set
//
// Example:
//
//	loc, _ := kernel.NewLocation(33.5780, -7.6200)
//	c, _ := customer.NewCustomer(kernel.NewID(kernel.KindCustomer), "Khalid Alami", loc)
//	_ = c.StartOrder(orderID)
//	c.HasActiveOrder() // true
type Customer struct {
	id            kernel.ID
	name          string
	location      kernel.Location
	activeOrderID kernel.ID
	guard         guard.ConstructorGuard
}

// NewCustomer creates a customer without an active order.
func NewCustomer(id kernel.ID, name string, location kernel.Location) (*Customer, error) {
	c := &Customer{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the Customer was properly constructed using NewCustomer.
func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.ID {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) Location() kernel.Location {
	return c.location
}

// HasActiveOrder reports whether the customer waits for a delivery.
func (c *Customer) HasActiveOrder() bool {
	return !c.activeOrderID.IsZero()
}

// ActiveOrder returns the id of the order the customer waits for.
func (c *Customer) ActiveOrder() (orderID kernel.ID, ok bool) {
	return c.activeOrderID, c.HasActiveOrder()
}

// StartOrder links orderID as the active order.
//
// Returns:
//   - error: errs.StateIsInvalidError if another order is still active,
//     or a validation error for a non order id
func (c *Customer) StartOrder(orderID kernel.ID) error {
	if err := orderID.ValidateKind(kernel.KindOrder); err != nil {
		return err
	}
	if c.HasActiveOrder() {
		return errs.NewStateIsInvalidError("customer", "ordering", "start an order for")
	}

	c.activeOrderID = orderID
	return nil
}

// FinishOrder clears the active order. orderID must be the active one.
func (c *Customer) FinishOrder(orderID kernel.ID) error {
	if c.activeOrderID != orderID || orderID.IsZero() {
		return errs.NewStateIsInvalidError("customer", "idle", "finish order "+orderID.String()+" of")
	}

	c.activeOrderID = kernel.ID{}
	return nil
}

// Clone returns an independent copy of the customer.
func (c *Customer) Clone() *Customer {
	cp := *c
	return &cp
}

func (c *Customer) setID(id kernel.ID) error {
	if err := id.ValidateKind(kernel.KindCustomer); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Customer) setLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
