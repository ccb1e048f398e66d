package commands

import (
	"context"
)

// BeginTransitCommandHandler moves an assigned order to in-transit.
type BeginTransitCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewBeginTransitCommandHandler(uowFactory OrderUoWFactory) BeginTransitCommandHandler {
	return BeginTransitCommandHandler{uowFactory: uowFactory}
}

func (h BeginTransitCommandHandler) Handle(ctx context.Context, cmd BeginTransitCommand) error {
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

	if err = orderEntity.BeginTransit(); err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, orderEntity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
