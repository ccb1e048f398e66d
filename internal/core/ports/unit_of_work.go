package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary over the entity store.
// Changes made through its repositories become visible to readers only on
// Commit, all together. Client code must explicitly manage the lifecycle and
// always call Rollback (a no-op after Commit) to release the transaction.
type UnitOfWork interface {
	// Begin starts the transaction.
	Begin(ctx context.Context) error

	// Commit applies every staged change.
	Commit(ctx context.Context) error

	// Rollback discards staged changes.
	Rollback(ctx context.Context) error

	StoreRepository() StoreRepository
	CourierRepository() CourierRepository
	CustomerRepository() CustomerRepository
	OrderRepository() OrderRepository
}
