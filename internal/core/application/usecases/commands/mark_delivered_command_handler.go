package commands

import (
	"context"
	"fmt"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/customer"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
)

// MarkDeliveredCommandHandler completes an order and frees what it held:
// the courier returns to available and the customer may order again.
//
// Example:
//
//	handler := NewMarkDeliveredCommandHandler(uowFactory, time.Now)
//	cmd, _ := NewMarkDeliveredCommand(orderID)
//	if err := handler.Handle(ctx, cmd); errors.Is(err, errs.ErrStateIsInvalid) {
//	    // pending or already delivered
//	}
type MarkDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewMarkDeliveredCommandHandler(uowFactory OrderUoWFactory, clock Clock) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle delivers the order, releases its courier and clears the customer's
// active order in one unit of work.
func (h MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
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

	ordersRepo := uow.OrderRepository()
	orderEntity, err := ordersRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = orderEntity.Deliver(); err != nil {
		return err
	}

	courierEntity, err := h.releaseCourier(ctx, uow, orderEntity)
	if err != nil {
		return err
	}

	customerEntity, err := h.finishCustomerOrder(ctx, uow, orderEntity)
	if err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, orderEntity); err != nil {
		return err
	}

	if err = uow.CourierRepository().Update(ctx, courierEntity); err != nil {
		return err
	}

	if err = uow.CustomerRepository().Update(ctx, customerEntity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h MarkDeliveredCommandHandler) releaseCourier(
	ctx context.Context,
	uow OrderUoW,
	orderEntity *order.Order,
) (*courier.Courier, error) {
	courierID, ok := orderEntity.Courier()
	if !ok {
		return nil, errs.NewStateIsInvalidError("order", orderEntity.Status().String(), "deliver unassigned")
	}

	courierEntity, err := uow.CourierRepository().Get(ctx, courierID)
	if err != nil {
		return nil, fmt.Errorf("courier of %s: %w", orderEntity.ID(), err)
	}

	if err = courierEntity.Release(h.clock.now()); err != nil {
		return nil, err
	}

	return courierEntity, nil
}

func (h MarkDeliveredCommandHandler) finishCustomerOrder(
	ctx context.Context,
	uow OrderUoW,
	orderEntity *order.Order,
) (*customer.Customer, error) {
	customerEntity, err := uow.CustomerRepository().Get(ctx, orderEntity.Customer())
	if err != nil {
		return nil, fmt.Errorf("customer of %s: %w", orderEntity.ID(), err)
	}

	if err = customerEntity.FinishOrder(orderEntity.ID()); err != nil {
		return nil, err
	}

	return customerEntity, nil
}
