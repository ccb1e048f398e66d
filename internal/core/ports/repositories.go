// Package ports defines the contracts between the dispatch core and its adapters:
// repositories bound to a unit of work, the snapshot reader used by queries,
// and the outbound recommender, position feed and observer capabilities.
package ports

import (
	"context"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/customer"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/store"
)

// StoreRepository defines the persistence contract for store aggregates.
// Stores are immutable, so there is no Update.
type StoreRepository interface {
	// Add stores a new store. The id must not exist yet.
	Add(ctx context.Context, aggregate *store.Store) error

	// Get returns a detached copy of the store or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.ID) (*store.Store, error)
}

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add stores a new courier. The id must not exist yet.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update replaces the stored courier with the given one.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get returns a detached copy of the courier or errs.ErrObjectNotFound.
	Get(ctx context.Context, id kernel.ID) (*courier.Courier, error)

	// GetAll returns detached copies of every courier in insertion order.
	// The movement simulator uses it to move the whole fleet in one tick.
	GetAll(ctx context.Context) ([]*courier.Courier, error)
}

// CustomerRepository defines the persistence contract for customer aggregates.
type CustomerRepository interface {
	Add(ctx context.Context, aggregate *customer.Customer) error
	Update(ctx context.Context, aggregate *customer.Customer) error
	Get(ctx context.Context, id kernel.ID) (*customer.Customer, error)
}

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error
	Update(ctx context.Context, aggregate *order.Order) error
	Get(ctx context.Context, id kernel.ID) (*order.Order, error)
}
