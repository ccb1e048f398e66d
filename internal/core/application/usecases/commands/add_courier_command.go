package commands

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrAddCourierCommandIsNotConstructed = errors.New(
		"AddCourierCommand must be created via NewAddCourierCommand constructor",
	)
)

// AddCourierCommand represents a request to register a new courier in the fleet.
// New couriers start available.
//
// Example:
//
//	location, _ := kernel.NewLocation(33.5850, -7.6100)
//	cmd, err := NewAddCourierCommand("Yassine", location)
//	if err != nil {
//	    return fmt.Errorf("invalid courier data: %w", err)
//	}
//
//	handler := NewAddCourierCommandHandler(uowFactory, area, time.Now)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to add courier: %w", err)
//	}
//	fmt.Printf("Added courier with ID: %s", cmd.CourierID())
type AddCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.ID
	name      string
	location  kernel.Location

	guard guard.ConstructorGuard
}

// NewAddCourierCommand creates a command to register a courier.
// Automatically generates a unique ID for the courier. A zero location places
// the courier at random inside the spawn area.
func NewAddCourierCommand(name string, location kernel.Location) (AddCourierCommand, error) {
	command := AddCourierCommand{
		courierID: kernel.NewID(kernel.KindCourier),
		location:  location,
		guard:     guard.NewConstructorGuard(),
	}

	if err := command.setName(name); err != nil {
		return AddCourierCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AddCourierCommand) Validate() error {
	return c.guard.Validate(ErrAddCourierCommandIsNotConstructed)
}

// CourierID returns the courier ID from the command.
func (c AddCourierCommand) CourierID() kernel.ID {
	return c.courierID
}

// Name returns the courier name from the command.
func (c AddCourierCommand) Name() string {
	return c.name
}

// Location returns the requested location; the zero value asks for a random one.
func (c AddCourierCommand) Location() kernel.Location {
	return c.location
}

func (c *AddCourierCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}
