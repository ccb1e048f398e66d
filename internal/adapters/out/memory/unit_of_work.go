package memory

import (
	"context"
	"errors"
	"fmt"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/customer"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/store"
	"lastmile/internal/core/ports"
	"lastmile/internal/pkg/errs"
)

// ErrTransactionIsNotActive is returned by repositories and Commit used
// outside Begin and Commit/Rollback.
var ErrTransactionIsNotActive = errors.New("transaction is not active")

// UnitOfWorkFactory creates UnitOfWork instances over one EntityStore.
// Each business operation gets a fresh unit of work.
type UnitOfWorkFactory struct {
	entities *EntityStore
}

func NewUnitOfWorkFactory(entities *EntityStore) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{entities: entities}
}

// Create produces a new UnitOfWork ready for Begin.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{entities: f.entities}
}

// UnitOfWork stages every added or updated aggregate and applies them
// together on Commit. It holds the store's write lock while active.
//
// Example usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return fmt.Errorf("failed to begin: %w", err)
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().Get(ctx, orderID)
//	// ... mutate o
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
type UnitOfWork struct {
	entities *EntityStore
	active   bool

	stores    *staging[*store.Store]
	couriers  *staging[*courier.Courier]
	customers *staging[*customer.Customer]
	orders    *staging[*order.Order]
}

// Begin takes the write lock. Multiple calls to Begin on an active unit of
// work are no-ops.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.active {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	uow.entities.mu.Lock()
	uow.active = true
	uow.stores = newStaging(uow.entities.stores)
	uow.couriers = newStaging(uow.entities.couriers)
	uow.customers = newStaging(uow.entities.customers)
	uow.orders = newStaging(uow.entities.orders)
	return nil
}

// Commit applies every staged record and releases the lock.
// After commit the unit of work is closed and cannot be reused.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrTransactionIsNotActive
	}

	uow.stores.apply()
	uow.couriers.apply()
	uow.customers.apply()
	uow.orders.apply()
	uow.close()
	return nil
}

// Rollback discards staged records and releases the lock. It is a no-op on
// a unit of work that is not active, so it can always be deferred.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return nil
	}

	uow.close()
	return nil
}

func (uow *UnitOfWork) close() {
	uow.active = false
	uow.stores, uow.couriers, uow.customers, uow.orders = nil, nil, nil, nil
	uow.entities.mu.Unlock()
}

func (uow *UnitOfWork) StoreRepository() ports.StoreRepository {
	return &repository[*store.Store]{uow: uow, staged: func() *staging[*store.Store] { return uow.stores }}
}

func (uow *UnitOfWork) CourierRepository() ports.CourierRepository {
	return &repository[*courier.Courier]{uow: uow, staged: func() *staging[*courier.Courier] { return uow.couriers }}
}

func (uow *UnitOfWork) CustomerRepository() ports.CustomerRepository {
	return &repository[*customer.Customer]{uow: uow, staged: func() *staging[*customer.Customer] { return uow.customers }}
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &repository[*order.Order]{uow: uow, staged: func() *staging[*order.Order] { return uow.orders }}
}

// staging records the changes of one collection made inside a unit of work.
type staging[T aggregate[T]] struct {
	base  *table[T]
	rows  map[kernel.ID]T
	added []kernel.ID
}

func newStaging[T aggregate[T]](base *table[T]) *staging[T] {
	return &staging[T]{
		base: base,
		rows: make(map[kernel.ID]T),
	}
}

func (s *staging[T]) get(id kernel.ID) (T, bool) {
	if row, ok := s.rows[id]; ok {
		return row, true
	}
	return s.base.get(id)
}

func (s *staging[T]) ids() []kernel.ID {
	ids := make([]kernel.ID, 0, len(s.base.order)+len(s.added))
	ids = append(ids, s.base.order...)
	return append(ids, s.added...)
}

func (s *staging[T]) apply() {
	for id, row := range s.rows {
		s.base.rows[id] = row
	}
	s.base.order = append(s.base.order, s.added...)
}

// repository serves one collection of an active unit of work. Every value
// stored or returned is a copy, so callers never alias store records.
type repository[T aggregate[T]] struct {
	uow    *UnitOfWork
	staged func() *staging[T]
}

func (r *repository[T]) current() (*staging[T], error) {
	if !r.uow.active {
		return nil, ErrTransactionIsNotActive
	}
	return r.staged(), nil
}

// Add stages a new aggregate. Its id must be unknown.
func (r *repository[T]) Add(_ context.Context, agg T) error {
	s, err := r.current()
	if err != nil {
		return err
	}
	if err = agg.Validate(); err != nil {
		return err
	}

	id := agg.ID()
	if _, exists := s.get(id); exists {
		return errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%s %s already exists", s.base.name, id))
	}

	s.rows[id] = agg.Clone()
	s.added = append(s.added, id)
	return nil
}

// Update stages the whole record as the new version of an existing aggregate.
func (r *repository[T]) Update(_ context.Context, agg T) error {
	s, err := r.current()
	if err != nil {
		return err
	}
	if err = agg.Validate(); err != nil {
		return err
	}

	id := agg.ID()
	if _, exists := s.get(id); !exists {
		return errs.NewObjectNotFoundError(s.base.name, id.String())
	}

	s.rows[id] = agg.Clone()
	return nil
}

// Get returns a copy of the aggregate as seen by this unit of work.
func (r *repository[T]) Get(_ context.Context, id kernel.ID) (T, error) {
	var zero T

	s, err := r.current()
	if err != nil {
		return zero, err
	}
	if err = id.Validate(); err != nil {
		return zero, err
	}

	row, ok := s.get(id)
	if !ok {
		return zero, errs.NewObjectNotFoundError(s.base.name, id.String())
	}
	return row.Clone(), nil
}

// GetAll returns copies of every aggregate, committed ones first, in insertion order.
func (r *repository[T]) GetAll(_ context.Context) ([]T, error) {
	s, err := r.current()
	if err != nil {
		return nil, err
	}

	ids := s.ids()
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		row, _ := s.get(id)
		out = append(out, row.Clone())
	}
	return out, nil
}
