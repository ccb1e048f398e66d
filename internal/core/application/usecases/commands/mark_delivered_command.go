package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand completes an assigned or in-transit order.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewMarkDeliveredCommand(orderID kernel.ID) (MarkDeliveredCommand, error) {
	if err := orderID.ValidateKind(kernel.KindOrder); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return MarkDeliveredCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

func (c MarkDeliveredCommand) OrderID() kernel.ID {
	return c.orderID
}
