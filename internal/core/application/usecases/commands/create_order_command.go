package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to order from a store for a customer.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(customerID, storeID)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, time.Now)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
//	fmt.Printf("Order %s created and awaiting courier assignment", cmd.OrderID())
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.ID
	customerID kernel.ID
	storeID    kernel.ID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Generates the order ID and validates the kinds of both references.
func NewCreateOrderCommand(customerID, storeID kernel.ID) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		orderID: kernel.NewID(kernel.KindOrder),
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setCustomerID(customerID),
		orderCommand.setStoreID(storeID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier the new order will get.
func (c CreateOrderCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerID() kernel.ID {
	return c.customerID
}

func (c CreateOrderCommand) StoreID() kernel.ID {
	return c.storeID
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.ID) error {
	if err := customerID.ValidateKind(kernel.KindCustomer); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setStoreID(storeID kernel.ID) error {
	if err := storeID.ValidateKind(kernel.KindStore); err != nil {
		return err
	}

	c.storeID = storeID
	return nil
}
