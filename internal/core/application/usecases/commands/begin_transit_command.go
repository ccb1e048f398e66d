package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrBeginTransitCommandIsNotConstructed = errors.New(
	"BeginTransitCommand must be created via NewBeginTransitCommand constructor",
)

// BeginTransitCommand records that the assigned courier picked the order up.
type BeginTransitCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewBeginTransitCommand(orderID kernel.ID) (BeginTransitCommand, error) {
	if err := orderID.ValidateKind(kernel.KindOrder); err != nil {
		return BeginTransitCommand{}, err
	}

	return BeginTransitCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c BeginTransitCommand) Validate() error {
	return c.guard.Validate(ErrBeginTransitCommandIsNotConstructed)
}

func (c BeginTransitCommand) OrderID() kernel.ID {
	return c.orderID
}
