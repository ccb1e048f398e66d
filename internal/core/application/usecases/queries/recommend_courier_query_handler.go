package queries

import (
	"context"

	"lastmile/internal/core/domain/model/dispatch"
	"lastmile/internal/core/ports"
)

// RecommendCourierQueryHandler builds a dispatch request from a snapshot and
// hands it to a recommender. No lock is held while the recommender works,
// so movement ticks and commands proceed meanwhile.
type RecommendCourierQueryHandler struct {
	reader      ports.SnapshotReader
	recommender ports.Recommender
}

func NewRecommendCourierQueryHandler(
	reader ports.SnapshotReader,
	recommender ports.Recommender,
) RecommendCourierQueryHandler {
	return RecommendCourierQueryHandler{
		reader:      reader,
		recommender: recommender,
	}
}

// Handle returns the recommendation for the order.
//
// Returns:
//   - errs.ErrObjectNotFound for an unknown order (or dangling references)
//   - errs.ErrStateIsInvalid when the order is not pending
//   - dispatch.ErrNoCouriersAvailable when every courier is busy or offline
func (h RecommendCourierQueryHandler) Handle(
	ctx context.Context,
	query RecommendCourierQuery,
) (dispatch.Recommendation, error) {
	if err := query.Validate(); err != nil {
		return dispatch.Recommendation{}, err
	}

	snapshot, err := h.reader.DispatchSnapshot(ctx, query.OrderID())
	if err != nil {
		return dispatch.Recommendation{}, err
	}

	req, err := dispatch.NewRequest(snapshot.Order, snapshot.Customer, snapshot.Store, snapshot.Couriers)
	if err != nil {
		return dispatch.Recommendation{}, err
	}

	return h.recommender.Recommend(ctx, req)
}
