package commands

import (
	"context"

	"lastmile/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates pending orders and flags the customer as waiting for a delivery.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, time.Now)
//	cmd, _ := NewCreateOrderCommand(customerID, storeID)
//
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown customer or store
//	case errors.Is(err, errs.ErrStateIsInvalid):
//	    // the customer already has an active order
//	}
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// A nil clock uses time.Now.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the order creation command.
// The customer and the store must exist and the customer must not have an
// active order. Nothing is stored when any check fails.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerRepo := uow.CustomerRepository()
	customerEntity, err := customerRepo.Get(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	if _, err = uow.StoreRepository().Get(ctx, cmd.StoreID()); err != nil {
		return err
	}

	orderEntity, err := order.NewOrder(cmd.OrderID(), cmd.CustomerID(), cmd.StoreID(), h.clock.now())
	if err != nil {
		return err
	}

	if err = customerEntity.StartOrder(orderEntity.ID()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Add(ctx, orderEntity); err != nil {
		return err
	}

	if err = customerRepo.Update(ctx, customerEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
