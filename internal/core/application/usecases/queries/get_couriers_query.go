package queries

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrGetCouriersQueryIsNotConstructed = errors.New(
		"GetCouriersQuery must be created via NewGetCouriersQuery constructor",
	)
)

// GetCouriersQuery retrieves information about all couriers in the fleet.
// Returns courier identities, live locations and availability for monitoring
// and dispatching.
//
// Example:
//
//	query := NewGetCouriersQuery()
//	handler := NewGetCouriersQueryHandler(reader)
//
//	couriers, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve couriers: %w", err)
//	}
//
//	for _, c := range couriers {
//	    fmt.Printf("Courier %s (%s) at %s\n", c.Name, c.Status, c.Location)
//	}
type GetCouriersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetCouriersQuery creates a query to retrieve all couriers.
// This is a parameterless query that fetches the complete fleet.
func NewGetCouriersQuery() GetCouriersQuery {
	return GetCouriersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCouriersQueryIsNotConstructed if validation fails.
func (q GetCouriersQuery) Validate() error {
	return q.guard.Validate(ErrGetCouriersQueryIsNotConstructed)
}

// GetCouriersQueryResponse represents courier information in the read model.
type GetCouriersQueryResponse struct {
	ID          kernel.ID
	Name        string
	Location    kernel.Location
	Status      courier.Status
	LastUpdated time.Time
}
