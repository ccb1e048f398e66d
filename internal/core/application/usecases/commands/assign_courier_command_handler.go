package commands

import (
	"context"
)

// AssignCourierCommandHandler orchestrates the courier assignment.
// Ensures transactional consistency when updating both order and courier states.
//
// Example:
//
//	handler := NewAssignCourierCommandHandler(uowFactory, time.Now)
//	cmd, _ := NewAssignCourierCommand(orderID, courierID)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    log.Println("Unknown order or courier")
//	case errors.Is(err, errs.ErrStateIsInvalid):
//	    log.Println("Order is not pending")
//	case errors.Is(err, errs.ErrObjectIsUnavailable):
//	    log.Println("Courier is busy or offline")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	default:
//	    log.Println("Courier assigned successfully")
//	}
type AssignCourierCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

// NewAssignCourierCommandHandler creates a handler for courier assignment operations.
// A nil clock uses time.Now.
func NewAssignCourierCommandHandler(uowFactory OrderUoWFactory, clock Clock) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the courier assignment command.
// The order is checked before the courier, so a stale request on a non pending
// order reports errs.ErrStateIsInvalid whatever the courier state is.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, command AssignCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	ordersRepo := uow.OrderRepository()

	orderEntity, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	courierEntity, err := courierRepo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	if err = orderEntity.Assign(courierEntity.ID()); err != nil {
		return err
	}

	if err = courierEntity.TakeOrder(h.clock.now()); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, orderEntity); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, courierEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
