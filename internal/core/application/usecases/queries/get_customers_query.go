package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrGetCustomersQueryIsNotConstructed = errors.New(
		"GetCustomersQuery must be created via NewGetCustomersQuery constructor",
	)
)

// GetCustomersQuery retrieves every customer in insertion order.
type GetCustomersQuery struct {
	guard guard.ConstructorGuard
}

func NewGetCustomersQuery() GetCustomersQuery {
	return GetCustomersQuery{guard: guard.NewConstructorGuard()}
}

func (q GetCustomersQuery) Validate() error {
	return q.guard.Validate(ErrGetCustomersQueryIsNotConstructed)
}

// GetCustomersQueryResponse is the customer read model. ActiveOrderID is the
// zero ID when HasActiveOrder is false.
type GetCustomersQueryResponse struct {
	ID             kernel.ID
	Name           string
	Location       kernel.Location
	HasActiveOrder bool
	ActiveOrderID  kernel.ID
}
