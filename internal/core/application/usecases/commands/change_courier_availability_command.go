package commands

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var ErrChangeCourierAvailabilityCommandIsNotConstructed = errors.New(
	"ChangeCourierAvailabilityCommand must be created via NewChangeCourierAvailabilityCommand constructor",
)

// ChangeCourierAvailabilityCommand takes a courier out of service or brings it back.
type ChangeCourierAvailabilityCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.ID
	online    bool

	guard guard.ConstructorGuard
}

func NewChangeCourierAvailabilityCommand(courierID kernel.ID, online bool) (ChangeCourierAvailabilityCommand, error) {
	if err := courierID.ValidateKind(kernel.KindCourier); err != nil {
		return ChangeCourierAvailabilityCommand{}, err
	}

	return ChangeCourierAvailabilityCommand{
		courierID: courierID,
		online:    online,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrChangeCourierAvailabilityCommandIsNotConstructed)
}

func (c ChangeCourierAvailabilityCommand) CourierID() kernel.ID {
	return c.courierID
}

// Online is true to make the courier available and false to take it offline.
func (c ChangeCourierAvailabilityCommand) Online() bool {
	return c.online
}
