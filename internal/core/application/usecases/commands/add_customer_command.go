package commands

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrAddCustomerCommandIsNotConstructed = errors.New(
		"AddCustomerCommand must be created via NewAddCustomerCommand constructor",
	)
)

// AddCustomerCommand represents a request to register a customer.
// A zero location places the customer at random inside the spawn area.
type AddCustomerCommand struct { //nolint:recvcheck //using for validation
	customerID kernel.ID
	name       string
	location   kernel.Location

	guard guard.ConstructorGuard
}

func NewAddCustomerCommand(name string, location kernel.Location) (AddCustomerCommand, error) {
	command := AddCustomerCommand{
		customerID: kernel.NewID(kernel.KindCustomer),
		location:   location,
		guard:      guard.NewConstructorGuard(),
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return AddCustomerCommand{}, ErrNameIsRequired
	}
	command.name = name

	return command, nil
}

func (c AddCustomerCommand) Validate() error {
	return c.guard.Validate(ErrAddCustomerCommandIsNotConstructed)
}

func (c AddCustomerCommand) CustomerID() kernel.ID {
	return c.customerID
}

func (c AddCustomerCommand) Name() string {
	return c.name
}

func (c AddCustomerCommand) Location() kernel.Location {
	return c.location
}
