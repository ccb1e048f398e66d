package ports

import (
	"context"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/customer"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/store"
)

// Snapshot is a consistent point-in-time copy of the entity store.
// Every slice is in insertion order and every element is detached from the store.
type Snapshot struct {
	Stores    []*store.Store
	Couriers  []*courier.Courier
	Customers []*customer.Customer
	Orders    []*order.Order
}

// DispatchSnapshot is the consistent input of a recommendation.
type DispatchSnapshot struct {
	Order    *order.Order
	Customer *customer.Customer
	Store    *store.Store
	Couriers []*courier.Courier
}

// SnapshotReader serves read-only copies to queries without taking part in a
// unit of work. Implementations must never expose a half-applied commit.
type SnapshotReader interface {
	// Snapshot copies all four collections under one read lock.
	Snapshot(ctx context.Context) (Snapshot, error)

	// DispatchSnapshot copies the order, its customer and store, and the whole
	// courier fleet under one read lock. Unknown ids yield errs.ErrObjectNotFound.
	DispatchSnapshot(ctx context.Context, orderID kernel.ID) (DispatchSnapshot, error)
}
