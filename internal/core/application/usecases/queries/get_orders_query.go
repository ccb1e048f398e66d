package queries

import (
	"errors"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
)

// GetOrdersQuery retrieves orders in creation order. With onlyActive it
// skips delivered orders, giving the current delivery workload.
//
// Example:
//
//	query := NewGetOrdersQuery(true)
//	handler := NewGetOrdersQueryHandler(reader)
//
//	active, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve orders: %w", err)
//	}
//	fmt.Printf("%d orders awaiting delivery\n", len(active))
type GetOrdersQuery struct {
	onlyActive bool

	guard guard.ConstructorGuard
}

func NewGetOrdersQuery(onlyActive bool) GetOrdersQuery {
	return GetOrdersQuery{
		onlyActive: onlyActive,
		guard:      guard.NewConstructorGuard(),
	}
}

func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// OnlyActive reports whether delivered orders are filtered out.
func (q GetOrdersQuery) OnlyActive() bool {
	return q.onlyActive
}

// GetOrdersQueryResponse is the order read model. CourierID is the zero ID
// while the order is pending.
type GetOrdersQueryResponse struct {
	ID         kernel.ID
	CustomerID kernel.ID
	StoreID    kernel.ID
	CourierID  kernel.ID
	Status     order.Status
	CreatedAt  time.Time
}
