package queries

import (
	"errors"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/pkg/guard"
)

var (
	ErrRecommendCourierQueryIsNotConstructed = errors.New(
		"RecommendCourierQuery must be created via NewRecommendCourierQuery constructor",
	)
)

// RecommendCourierQuery asks which available courier should take a pending order.
// The answer is advisory: nothing changes until an AssignCourierCommand confirms it.
//
// Example:
//
//	query, err := NewRecommendCourierQuery(orderID)
//	rec, err := handler.Handle(ctx, query)
//	if errors.Is(err, dispatch.ErrNoCouriersAvailable) {
//	    // every courier is busy or offline
//	}
type RecommendCourierQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.ID

	guard guard.ConstructorGuard
}

func NewRecommendCourierQuery(orderID kernel.ID) (RecommendCourierQuery, error) {
	if err := orderID.ValidateKind(kernel.KindOrder); err != nil {
		return RecommendCourierQuery{}, err
	}

	return RecommendCourierQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q RecommendCourierQuery) Validate() error {
	return q.guard.Validate(ErrRecommendCourierQueryIsNotConstructed)
}

func (q RecommendCourierQuery) OrderID() kernel.ID {
	return q.orderID
}
