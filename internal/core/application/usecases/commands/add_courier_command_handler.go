package commands

import (
	"context"

	"lastmile/internal/core/domain/model/courier"
)

// AddCourierCommandHandler handles the business logic for courier registration.
// Creates and persists new available couriers.
//
// Example:
//
//	handler := NewAddCourierCommandHandler(uowFactory, area, time.Now)
//	cmd, _ := NewAddCourierCommand("Sara", kernel.Location{}) // random location
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("courier registration failed: %w", err)
//	}
type AddCourierCommandHandler struct {
	uowFactory CourierUoWFactory
	area       *SpawnArea
	clock      Clock
}

// NewAddCourierCommandHandler creates a handler for courier registration.
// A nil clock uses time.Now.
func NewAddCourierCommandHandler(uowFactory CourierUoWFactory, area *SpawnArea, clock Clock) AddCourierCommandHandler {
	return AddCourierCommandHandler{
		uowFactory: uowFactory,
		area:       area,
		clock:      clock,
	}
}

// Handle processes the courier registration command.
// Creates a new courier entity and persists it within a unit of work.
// Automatically rolls back on any error to prevent partial data.
func (h *AddCourierCommandHandler) Handle(ctx context.Context, cmd AddCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	location, err := h.area.locationOrRandom(cmd.Location())
	if err != nil {
		return err
	}

	courierEntity, err := courier.NewCourier(cmd.CourierID(), cmd.Name(), location, h.clock.now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CourierRepository().Add(ctx, courierEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
