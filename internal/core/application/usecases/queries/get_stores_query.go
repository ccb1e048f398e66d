// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries work on detached snapshots and never take part in a unit of work.
package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/store"
	"lastmile/internal/pkg/guard"
)

var (
	ErrGetStoresQueryIsNotConstructed = errors.New(
		"GetStoresQuery must be created via NewGetStoresQuery constructor",
	)
)

// GetStoresQuery retrieves every store in insertion order.
type GetStoresQuery struct {
	guard guard.ConstructorGuard
}

func NewGetStoresQuery() GetStoresQuery {
	return GetStoresQuery{guard: guard.NewConstructorGuard()}
}

func (q GetStoresQuery) Validate() error {
	return q.guard.Validate(ErrGetStoresQueryIsNotConstructed)
}

// GetStoresQueryResponse is the store read model.
type GetStoresQueryResponse struct {
	ID       kernel.ID
	Name     string
	Location kernel.Location
	Category store.Category
	Address  string
}
