package commands

import (
	"context"

	"lastmile/internal/core/domain/model/store"
)

// AddStoreCommandHandler registers stores.
type AddStoreCommandHandler struct {
	uowFactory StoreUoWFactory
	area       *SpawnArea
}

func NewAddStoreCommandHandler(uowFactory StoreUoWFactory, area *SpawnArea) AddStoreCommandHandler {
	return AddStoreCommandHandler{
		uowFactory: uowFactory,
		area:       area,
	}
}

// Handle creates the store, drawing a location when none was given, and
// persists it within a unit of work.
func (h *AddStoreCommandHandler) Handle(ctx context.Context, cmd AddStoreCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	location, err := h.area.locationOrRandom(cmd.Location())
	if err != nil {
		return err
	}

	storeEntity, err := store.NewStore(cmd.StoreID(), cmd.Name(), location, cmd.Category(), cmd.Address())
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

	if err = uow.StoreRepository().Add(ctx, storeEntity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
