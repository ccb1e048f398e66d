package commands

import (
	"context"

	"lastmile/internal/core/domain/model/customer"
)

// AddCustomerCommandHandler registers customers without an active order.
type AddCustomerCommandHandler struct {
	uowFactory CustomerUoWFactory
	area       *SpawnArea
}

func NewAddCustomerCommandHandler(uowFactory CustomerUoWFactory, area *SpawnArea) AddCustomerCommandHandler {
	return AddCustomerCommandHandler{
		uowFactory: uowFactory,
		area:       area,
	}
}

func (h *AddCustomerCommandHandler) Handle(ctx context.Context, cmd AddCustomerCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	location, err := h.area.locationOrRandom(cmd.Location())
	if err != nil {
		return err
	}

	customerEntity, err := customer.NewCustomer(cmd.CustomerID(), cmd.Name(), location)
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

	if err = uow.CustomerRepository().Add(ctx, customerEntity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
