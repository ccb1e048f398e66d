package commands

import (
	"context"
	"fmt"
	"time"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/ports"
)

// ChangeCourierAvailabilityCommandHandler toggles couriers between available
// and offline. Busy couriers are refused with errs.ErrStateIsInvalid.
// With a feed, offline couriers leave it and returning couriers are
// published at their current position once the change is committed.
type ChangeCourierAvailabilityCommandHandler struct {
	uowFactory CourierUoWFactory
	feed       ports.PositionFeed
	clock      Clock
}

func NewChangeCourierAvailabilityCommandHandler(
	uowFactory CourierUoWFactory,
	feed ports.PositionFeed,
	clock Clock,
) ChangeCourierAvailabilityCommandHandler {
	return ChangeCourierAvailabilityCommandHandler{
		uowFactory: uowFactory,
		feed:       feed,
		clock:      clock,
	}
}

func (h ChangeCourierAvailabilityCommandHandler) Handle(ctx context.Context, cmd ChangeCourierAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	courierEntity, err := h.change(ctx, cmd, h.clock.now())
	if err != nil {
		return err
	}

	if h.feed == nil {
		return nil
	}

	if cmd.Online() {
		err = h.feed.PublishPositions(ctx, []*courier.Courier{courierEntity})
	} else {
		err = h.feed.RemovePosition(ctx, courierEntity.ID())
	}
	if err != nil {
		return fmt.Errorf("update position feed: %w", err)
	}

	return nil
}

func (h ChangeCourierAvailabilityCommandHandler) change(
	ctx context.Context,
	cmd ChangeCourierAvailabilityCommand,
	now time.Time,
) (*courier.Courier, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	courierEntity, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}

	if cmd.Online() {
		err = courierEntity.GoOnline(now)
	} else {
		err = courierEntity.GoOffline(now)
	}
	if err != nil {
		return nil, err
	}

	if err = courierRepo.Update(ctx, courierEntity); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return courierEntity, nil
}
