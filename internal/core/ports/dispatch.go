package ports

import (
	"context"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/dispatch"
	"lastmile/internal/core/domain/model/kernel"
)

// Recommender suggests a courier for a dispatch request.
// Implementations must not mutate any state and must honour ctx cancellation.
type Recommender interface {
	Recommend(ctx context.Context, req dispatch.Request) (dispatch.Recommendation, error)
}

// PositionFeed publishes live courier positions to presentation collaborators.
// Offline couriers are removed from the feed.
type PositionFeed interface {
	PublishPositions(ctx context.Context, couriers []*courier.Courier) error
	RemovePosition(ctx context.Context, courierID kernel.ID) error
}

// DispatchObserver records recommendation outcomes.
type DispatchObserver interface {
	RecommendationServed(ctx context.Context, source dispatch.Source)
	RecommendationFailed(ctx context.Context, err error)
}
