// Package commands contains business operations that modify the entity store.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, unit of work, persistence.
package commands

import (
	"context"
	"time"

	"lastmile/internal/core/ports"
)

// Unit of Work interfaces narrow ports.UnitOfWork to what each handler touches.
type (
	// TxManager handles the unit of work lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	StoreRepoFactory interface {
		StoreRepository() ports.StoreRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// StoreUoW manages transactions for store-only operations.
	StoreUoW interface {
		TxManager
		StoreRepoFactory
	}

	// StoreUoWFactory creates new store unit of work instances.
	StoreUoWFactory interface {
		Create() StoreUoW
	}

	// CourierUoW manages transactions for courier-only operations:
	// registration, availability and movement.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}

	// CustomerUoW manages transactions for customer-only operations.
	CustomerUoW interface {
		TxManager
		CustomerRepoFactory
	}

	// CustomerUoWFactory creates new customer unit of work instances.
	CustomerUoWFactory interface {
		Create() CustomerUoW
	}

	// OrderUoW manages transactions across every aggregate an order lifecycle
	// step touches.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().Get(ctx, orderID)
	//   c, err := uow.CourierRepository().Get(ctx, courierID)
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		StoreRepoFactory
		CourierRepoFactory
		CustomerRepoFactory
		OrderRepoFactory
	}

	// OrderUoWFactory creates new unit of work instances for lifecycle operations.
	OrderUoWFactory interface {
		Create() OrderUoW
	}
)

// Clock returns the current time. Handlers stamp courier updates and order
// creation with it.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}
