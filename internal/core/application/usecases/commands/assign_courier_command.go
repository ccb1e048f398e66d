package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand confirms a courier for a pending order. The courier is
// usually the one a recommendation suggested, but any available courier is accepted.
//
// Example:
//
//	cmd, err := NewAssignCourierCommand(rec.OrderID, rec.CourierID)
//	handler := NewAssignCourierCommandHandler(uowFactory, time.Now)
//	err = handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrStateIsInvalid) {
//	    // the recommendation was stale
//	}
type AssignCourierCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.ID
	courierID kernel.ID

	guard guard.ConstructorGuard
}

// NewAssignCourierCommand creates a command to assign courierID to orderID.
func NewAssignCourierCommand(orderID, courierID kernel.ID) (AssignCourierCommand, error) {
	if err := errors.Join(
		orderID.ValidateKind(kernel.KindOrder),
		courierID.ValidateKind(kernel.KindCourier),
	); err != nil {
		return AssignCourierCommand{}, err
	}

	return AssignCourierCommand{
		orderID:   orderID,
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignCourierCommandIsNotConstructed if validation fails.
func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(
		ErrAssignCourierCommandIsNotConstructed,
	)
}

func (c AssignCourierCommand) OrderID() kernel.ID {
	return c.orderID
}

func (c AssignCourierCommand) CourierID() kernel.ID {
	return c.courierID
}
