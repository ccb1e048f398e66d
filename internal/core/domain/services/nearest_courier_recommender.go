package services

import (
	"context"
	"fmt"
	"math"

	"lastmile/internal/core/domain/model/dispatch"
	"lastmile/internal/pkg/errs"
)

const (
	// DefaultAverageSpeedKmh is the courier speed assumed for local time estimates.
	DefaultAverageSpeedKmh = 20.0

	// FallbackReasoning explains recommendations made without the reasoning service.
	FallbackReasoning = "Automatic fallback to the closest available courier based on raw GPS distance to the store."
)

// NearestCourierRecommender is a deterministic domain service that suggests the
// available courier closest to the store.
//
// Business rules:
//   - selection uses straight-line distance to the store only
//   - on ties the courier added first wins, so the result never depends on call order
//   - the estimated time covers courier to store plus store to customer at a constant speed
//
// Example usage:
//
//	recommender := services.NewNearestCourierRecommender(services.DefaultAverageSpeedKmh)
//	rec, err := recommender.Recommend(ctx, req)
//	if errors.Is(err, dispatch.ErrNoCouriersAvailable) {
//	    // nobody to send
//	}
type NearestCourierRecommender struct {
	averageSpeedKmh float64
}

// NewNearestCourierRecommender creates the recommender. A non positive speed
// falls back to DefaultAverageSpeedKmh.
func NewNearestCourierRecommender(averageSpeedKmh float64) NearestCourierRecommender {
	if averageSpeedKmh <= 0 || math.IsNaN(averageSpeedKmh) {
		averageSpeedKmh = DefaultAverageSpeedKmh
	}
	return NearestCourierRecommender{averageSpeedKmh: averageSpeedKmh}
}

// Recommend picks the first candidate with the minimal distance to the store.
//
// Returns:
//   - dispatch.Recommendation: sourced dispatch.SourceNearestFallback
//   - error: dispatch.ErrNoCouriersAvailable for a request without candidates
func (r NearestCourierRecommender) Recommend(_ context.Context, req dispatch.Request) (dispatch.Recommendation, error) {
	if len(req.Candidates) == 0 {
		return dispatch.Recommendation{}, dispatch.ErrNoCouriersAvailable
	}

	best := req.Candidates[0]
	for _, c := range req.Candidates[1:] {
		if c.DistanceToStore < best.DistanceToStore {
			best = c
		}
	}

	eta, err := EstimateTravelTime(best.DistanceToStore+req.DistanceStoreToCustomer, r.averageSpeedKmh)
	if err != nil {
		return dispatch.Recommendation{}, err
	}

	return req.Accept(best.CourierID, FallbackReasoning, eta, dispatch.SourceNearestFallback)
}

// EstimateTravelTime renders the time needed to cover km at speedKmh as
// "~N min", rounded up to whole minutes and never below one minute.
//
// Example:
//
//	eta, _ := EstimateTravelTime(2.7, 20) // "~9 min"
func EstimateTravelTime(km, speedKmh float64) (string, error) {
	if km < 0 || math.IsNaN(km) || math.IsInf(km, 0) {
		return "", errs.NewValueIsOutOfRangeError("km", km, 0, "+Inf")
	}
	if speedKmh <= 0 || math.IsNaN(speedKmh) {
		return "", errs.NewValueIsOutOfRangeError("speedKmh", speedKmh, "0 exclusive", "+Inf")
	}

	minutes := int(math.Ceil(km / speedKmh * 60))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("~%d min", minutes), nil
}
