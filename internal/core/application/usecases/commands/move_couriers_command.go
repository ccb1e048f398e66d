package commands

import (
	"errors"

	"lastmile/internal/pkg/guard"
)

// MoveCouriersCommand triggers one tick of the movement simulation: every
// courier that is not offline drifts by a small random offset.
//
// Example:
//
//	cmd := NewMoveCouriersCommand()
//	handler, _ := NewMoveCouriersCommandHandler(uowFactory, rnd, DefaultMovementJitter, feed, time.Now)
//
//	// Run periodically to simulate GPS updates
//	ticker := time.NewTicker(4 * time.Second)
//	for range ticker.C {
//	    if err := handler.Handle(ctx, cmd); err != nil {
//	        log.Printf("Movement update failed: %v", err)
//	    }
//	}
type MoveCouriersCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrMoveCouriersCommandIsNotConstructed = errors.New(
		"MoveCouriersCommand must be created via NewMoveCouriersCommand constructor",
	)
)

// NewMoveCouriersCommand creates a command to trigger courier movement updates.
// This is a parameterless command that processes the whole fleet.
func NewMoveCouriersCommand() MoveCouriersCommand {
	command := MoveCouriersCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrMoveCouriersCommandIsNotConstructed if validation fails.
func (c *MoveCouriersCommand) Validate() error {
	return c.guard.Validate(ErrMoveCouriersCommandIsNotConstructed)
}
