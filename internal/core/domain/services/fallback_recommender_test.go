package services_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"lastmile/internal/core/domain/model/dispatch"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/services"
	"lastmile/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newFallbackRecommender(t *testing.T, primary *MockRecommender, observer *MockObserver) *services.FallbackRecommender {
	t.Helper()
	var p ports.Recommender
	if primary != nil {
		p = primary
	}
	r, err := services.NewFallbackRecommender(p, services.NewNearestCourierRecommender(0), time.Second, observer, discardLogger())
	require.NoError(t, err)
	return r
}

func TestNewFallbackRecommender(t *testing.T) {
	t.Run("should require fallback", func(t *testing.T) {
		_, err := services.NewFallbackRecommender(&MockRecommender{}, nil, 0, nil, discardLogger())
		require.Error(t, err)
	})

	t.Run("should require logger", func(t *testing.T) {
		_, err := services.NewFallbackRecommender(nil, services.NewNearestCourierRecommender(0), 0, nil, nil)
		require.Error(t, err)
	})
}

func TestFallbackRecommender_Recommend(t *testing.T) {
	t.Run("should serve the primary answer", func(t *testing.T) {
		// Given
		req := newRequest(t, 33.609, 33.6027)
		courierA := req.Candidates[0].CourierID
		primary := &MockRecommender{}
		observer := &MockObserver{}
		primary.On("Recommend", mock.Anything, req).Return(dispatch.Recommendation{
			OrderID:       req.OrderID,
			CourierID:     courierA,
			Reasoning:     "A is heading towards the store",
			EstimatedTime: "~12 min",
		}, nil).Once()
		observer.On("RecommendationServed", mock.Anything, dispatch.SourceReasoningService).Once()
		recommender := newFallbackRecommender(t, primary, observer)

		// When
		rec, err := recommender.Recommend(t.Context(), req)

		// Then
		require.NoError(t, err)
		assert.Equal(t, courierA, rec.CourierID)
		assert.Equal(t, "A is heading towards the store", rec.Reasoning)
		assert.Equal(t, "~12 min", rec.EstimatedTime)
		assert.Equal(t, dispatch.SourceReasoningService, rec.Source)
		primary.AssertExpectations(t)
		observer.AssertExpectations(t)
	})

	t.Run("should fall back to the nearest courier when primary fails", func(t *testing.T) {
		// Given
		req := newRequest(t, 33.609, 33.6027)
		primary := &MockRecommender{}
		observer := &MockObserver{}
		primary.On("Recommend", mock.Anything, req).
			Return(dispatch.Recommendation{}, errors.New("connection refused")).Once()
		mock.InOrder(
			observer.On("RecommendationFailed", mock.Anything, mock.MatchedBy(func(err error) bool {
				return errors.Is(err, dispatch.ErrRecommendationFailed)
			})).Once(),
			observer.On("RecommendationServed", mock.Anything, dispatch.SourceNearestFallback).Once(),
		)
		recommender := newFallbackRecommender(t, primary, observer)

		// When
		rec, err := recommender.Recommend(t.Context(), req)

		// Then
		require.NoError(t, err)
		assert.Equal(t, req.Candidates[1].CourierID, rec.CourierID)
		assert.Equal(t, services.FallbackReasoning, rec.Reasoning)
		assert.Equal(t, dispatch.SourceNearestFallback, rec.Source)
		observer.AssertExpectations(t)
	})

	t.Run("should report an unreachable primary as such", func(t *testing.T) {
		// Given
		req := newRequest(t, 33.609, 33.6027)
		primary := &MockRecommender{}
		observer := &MockObserver{}
		primary.On("Recommend", mock.Anything, req).
			Return(dispatch.Recommendation{}, fmt.Errorf("%w: code 503", dispatch.ErrRecommenderUnreachable)).Once()
		observer.On("RecommendationFailed", mock.Anything, mock.MatchedBy(func(err error) bool {
			return errors.Is(err, dispatch.ErrRecommenderUnreachable)
		})).Once()
		observer.On("RecommendationServed", mock.Anything, dispatch.SourceNearestFallback).Once()
		recommender := newFallbackRecommender(t, primary, observer)

		// When
		_, err := recommender.Recommend(t.Context(), req)

		// Then
		require.NoError(t, err)
		observer.AssertExpectations(t)
	})

	t.Run("should fall back when primary suggests an unknown courier", func(t *testing.T) {
		// Given
		req := newRequest(t, 33.609, 33.6027)
		primary := &MockRecommender{}
		observer := &MockObserver{}
		primary.On("Recommend", mock.Anything, req).Return(dispatch.Recommendation{
			OrderID:       req.OrderID,
			CourierID:     kernel.NewID(kernel.KindCourier),
			Reasoning:     "made up",
			EstimatedTime: "~1 min",
		}, nil).Once()
		observer.On("RecommendationFailed", mock.Anything, mock.Anything).Once()
		observer.On("RecommendationServed", mock.Anything, dispatch.SourceNearestFallback).Once()
		recommender := newFallbackRecommender(t, primary, observer)

		// When
		rec, err := recommender.Recommend(t.Context(), req)

		// Then
		require.NoError(t, err)
		assert.Equal(t, req.Candidates[1].CourierID, rec.CourierID)
		observer.AssertExpectations(t)
	})

	t.Run("should fall back when primary answers for another order", func(t *testing.T) {
		req := newRequest(t, 33.609)
		primary := &MockRecommender{}
		observer := &MockObserver{}
		primary.On("Recommend", mock.Anything, req).Return(dispatch.Recommendation{
			OrderID:       kernel.NewID(kernel.KindOrder),
			CourierID:     req.Candidates[0].CourierID,
			Reasoning:     "wrong order",
			EstimatedTime: "~1 min",
		}, nil).Once()
		observer.On("RecommendationFailed", mock.Anything, mock.Anything).Once()
		observer.On("RecommendationServed", mock.Anything, dispatch.SourceNearestFallback).Once()
		recommender := newFallbackRecommender(t, primary, observer)

		rec, err := recommender.Recommend(t.Context(), req)

		require.NoError(t, err)
		assert.Equal(t, dispatch.SourceNearestFallback, rec.Source)
	})

	t.Run("should fall back when primary exceeds the timeout", func(t *testing.T) {
		// Given
		req := newRequest(t, 33.609)
		primary := &MockRecommender{}
		primary.On("Recommend", mock.Anything, req).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return(dispatch.Recommendation{}, context.DeadlineExceeded).Once()
		recommender, err := services.NewFallbackRecommender(primary, services.NewNearestCourierRecommender(0),
			10*time.Millisecond, nil, discardLogger())
		require.NoError(t, err)

		// When
		rec, err := recommender.Recommend(t.Context(), req)

		// Then
		require.NoError(t, err)
		assert.Equal(t, dispatch.SourceNearestFallback, rec.Source)
	})

	t.Run("should use the fallback only without primary", func(t *testing.T) {
		req := newRequest(t, 33.609, 33.6027)
		observer := &MockObserver{}
		observer.On("RecommendationServed", mock.Anything, dispatch.SourceNearestFallback).Once()
		recommender := newFallbackRecommender(t, nil, observer)

		rec, err := recommender.Recommend(t.Context(), req)

		require.NoError(t, err)
		assert.Equal(t, req.Candidates[1].CourierID, rec.CourierID)
		observer.AssertNotCalled(t, "RecommendationFailed", mock.Anything, mock.Anything)
	})

	t.Run("should return the caller cancellation", func(t *testing.T) {
		// Given
		req := newRequest(t, 33.609)
		ctx, cancel := context.WithCancel(t.Context())
		primary := &MockRecommender{}
		observer := &MockObserver{}
		primary.On("Recommend", mock.Anything, req).
			Run(func(mock.Arguments) { cancel() }).
			Return(dispatch.Recommendation{}, context.Canceled).Once()
		recommender := newFallbackRecommender(t, primary, observer)

		// When
		_, err := recommender.Recommend(ctx, req)

		// Then
		require.ErrorIs(t, err, context.Canceled)
		observer.AssertNotCalled(t, "RecommendationServed", mock.Anything, mock.Anything)
		observer.AssertNotCalled(t, "RecommendationFailed", mock.Anything, mock.Anything)
	})

	t.Run("should fail without candidates", func(t *testing.T) {
		req := newRequest(t, 33.609)
		req.Candidates = nil
		primary := &MockRecommender{}
		recommender := newFallbackRecommender(t, primary, &MockObserver{})

		_, err := recommender.Recommend(t.Context(), req)

		require.ErrorIs(t, err, dispatch.ErrNoCouriersAvailable)
		primary.AssertNotCalled(t, "Recommend", mock.Anything, mock.Anything)
	})
}
