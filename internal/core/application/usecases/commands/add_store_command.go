package commands

import (
	"errors"
	"strings"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/store"
	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

var (
	ErrAddStoreCommandIsNotConstructed = errors.New(
		"AddStoreCommand must be created via NewAddStoreCommand constructor",
	)
	// ErrNameIsRequired is shared by every command that names a new entity.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// AddStoreCommand represents a request to register a store orders are picked up from.
//
// Example:
//
//	location, _ := kernel.NewLocation(33.5890, -7.6050)
//	cmd, err := NewAddStoreCommand("Burger King Maarif", location, "restaurant", "")
//	if err != nil {
//	    return fmt.Errorf("invalid store data: %w", err)
//	}
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to add store: %w", err)
//	}
//	fmt.Printf("Added store with ID: %s", cmd.StoreID())
type AddStoreCommand struct { //nolint:recvcheck //using for validation
	storeID  kernel.ID
	name     string
	location kernel.Location
	category store.Category
	address  string

	guard guard.ConstructorGuard
}

// NewAddStoreCommand creates a command to register a store.
// A zero location places the store at random inside the spawn area;
// an empty category defaults to store.DefaultCategory and an empty address
// to store.DefaultAddress.
func NewAddStoreCommand(name string, location kernel.Location, category, address string) (AddStoreCommand, error) {
	command := AddStoreCommand{
		storeID:  kernel.NewID(kernel.KindStore),
		location: location,
		address:  address,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setName(name),
		command.setCategory(category),
	); err != nil {
		return AddStoreCommand{}, err
	}

	return command, nil
}

func (c AddStoreCommand) Validate() error {
	return c.guard.Validate(ErrAddStoreCommandIsNotConstructed)
}

func (c AddStoreCommand) StoreID() kernel.ID {
	return c.storeID
}

func (c AddStoreCommand) Name() string {
	return c.name
}

// Location returns the requested location; the zero value asks for a random one.
func (c AddStoreCommand) Location() kernel.Location {
	return c.location
}

func (c AddStoreCommand) Category() store.Category {
	return c.category
}

func (c AddStoreCommand) Address() string {
	return c.address
}

func (c *AddStoreCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *AddStoreCommand) setCategory(category string) error {
	parsed, err := store.ParseCategory(category)
	if err != nil {
		return err
	}

	c.category = parsed
	return nil
}
