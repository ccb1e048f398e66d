// Package memory provides the in-process entity store of the dispatch engine
// and its Unit of Work implementation.
//
// The store owns the four collections (stores, couriers, customers, orders)
// in insertion order. Writers go through a UnitOfWork, which holds the write
// lock from Begin to Commit or Rollback and applies its staged records all
// together on Commit. Readers take consistent copies under the read lock.
//
// Usage Patterns:
//
//	entities := memory.NewEntityStore()
//	factory := memory.NewUnitOfWorkFactory(entities)
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.CourierRepository().Add(ctx, c); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Reads:
//
//	snapshot, err := entities.Snapshot(ctx)
//
// Concurrency Considerations:
//   - One unit of work writes at a time; keep units of work short
//   - Snapshots never observe a half-applied commit
//   - Every aggregate crossing the package boundary is a detached copy
package memory

import (
	"context"
	"sync"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/customer"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/store"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

var _ ports.SnapshotReader = (*EntityStore)(nil)

// EntityStore is the authoritative in-memory state. The zero value is not
// usable; create it with NewEntityStore.
type EntityStore struct {
	mu sync.RWMutex

	stores    *table[*store.Store]
	couriers  *table[*courier.Courier]
	customers *table[*customer.Customer]
	orders    *table[*order.Order]
}

func NewEntityStore() *EntityStore {
	return &EntityStore{
		stores:    newTable[*store.Store]("store"),
		couriers:  newTable[*courier.Courier]("courier"),
		customers: newTable[*customer.Customer]("customer"),
		orders:    newTable[*order.Order]("order"),
	}
}

// Snapshot copies all four collections under one read lock.
func (s *EntityStore) Snapshot(ctx context.Context) (ports.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return ports.Snapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return ports.Snapshot{
		Stores:    s.stores.all(),
		Couriers:  s.couriers.all(),
		Customers: s.customers.all(),
		Orders:    s.orders.all(),
	}, nil
}

// DispatchSnapshot copies an order, its endpoints and the fleet under one read lock.
func (s *EntityStore) DispatchSnapshot(ctx context.Context, orderID kernel.ID) (ports.DispatchSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return ports.DispatchSnapshot{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders.get(orderID)
	if !ok {
		return ports.DispatchSnapshot{}, errs.NewObjectNotFoundError("order", orderID.String())
	}
	c, ok := s.customers.get(o.Customer())
	if !ok {
		return ports.DispatchSnapshot{}, errs.NewObjectNotFoundError("customer", o.Customer().String())
	}
	st, ok := s.stores.get(o.Store())
	if !ok {
		return ports.DispatchSnapshot{}, errs.NewObjectNotFoundError("store", o.Store().String())
	}

	return ports.DispatchSnapshot{
		Order:    o.Clone(),
		Customer: c.Clone(),
		Store:    st.Clone(),
		Couriers: s.couriers.all(),
	}, nil
}

// aggregate is the shape every stored entity shares.
type aggregate[T any] interface {
	ID() kernel.ID
	Validate() error
	Clone() T
}

// table keeps one collection in insertion order. It is not synchronised;
// EntityStore.mu guards it.
type table[T aggregate[T]] struct {
	name  string
	rows  map[kernel.ID]T
	order []kernel.ID
}

func newTable[T aggregate[T]](name string) *table[T] {
	return &table[T]{
		name: name,
		rows: make(map[kernel.ID]T),
	}
}

// get returns the stored record itself; callers clone before handing it out.
func (t *table[T]) get(id kernel.ID) (T, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[T]) all() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.rows[id].Clone())
	}
	return out
}
