package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lastmile/internal/core/domain/model/dispatch"
	"lastmile/internal/core/ports"
)

// DefaultPrimaryTimeout bounds the wait for the primary recommender.
const DefaultPrimaryTimeout = 8 * time.Second

// FallbackRecommender composes a primary recommender, usually the remote
// reasoning service, with a deterministic fallback.
//
// The primary answer is re-validated against the request. Any primary error,
// timeout or invalid answer is logged, reported to the observer and absorbed:
// the fallback answers instead. Only a cancelled caller context or a fallback
// error reaches the caller.
type FallbackRecommender struct {
	primary  ports.Recommender
	fallback ports.Recommender
	timeout  time.Duration
	observer ports.DispatchObserver
	logger   *slog.Logger
}

// NewFallbackRecommender builds the chain. primary may be nil, in which case
// every request goes to fallback. A nil observer discards outcomes.
func NewFallbackRecommender(
	primary ports.Recommender,
	fallback ports.Recommender,
	timeout time.Duration,
	observer ports.DispatchObserver,
	logger *slog.Logger,
) (*FallbackRecommender, error) {
	if fallback == nil {
		return nil, errors.New("fallback recommender is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if timeout <= 0 {
		timeout = DefaultPrimaryTimeout
	}
	if observer == nil {
		observer = noopObserver{}
	}

	return &FallbackRecommender{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
		observer: observer,
		logger:   logger.With("component", "fallback_recommender"),
	}, nil
}

// Recommend implements ports.Recommender.
func (r *FallbackRecommender) Recommend(ctx context.Context, req dispatch.Request) (dispatch.Recommendation, error) {
	if len(req.Candidates) == 0 {
		return dispatch.Recommendation{}, dispatch.ErrNoCouriersAvailable
	}

	if r.primary != nil {
		rec, err := r.askPrimary(ctx, req)
		if err == nil {
			r.observer.RecommendationServed(ctx, rec.Source)
			return rec, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return dispatch.Recommendation{}, fmt.Errorf("recommend courier for %s: %w", req.OrderID, ctxErr)
		}

		r.observer.RecommendationFailed(ctx, err)
		r.logger.WarnContext(ctx, "primary recommender failed, using fallback",
			"order_id", req.OrderID.String(),
			"error", err)
	}

	rec, err := r.fallback.Recommend(ctx, req)
	if err != nil {
		return dispatch.Recommendation{}, err
	}

	r.observer.RecommendationServed(ctx, rec.Source)
	return rec, nil
}

func (r *FallbackRecommender) askPrimary(ctx context.Context, req dispatch.Request) (dispatch.Recommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rec, err := r.primary.Recommend(ctx, req)
	if err != nil {
		if errors.Is(err, dispatch.ErrRecommendationFailed) {
			return dispatch.Recommendation{}, err
		}
		return dispatch.Recommendation{}, fmt.Errorf("%w: %w", dispatch.ErrRecommendationFailed, err)
	}
	if rec.OrderID != req.OrderID {
		return dispatch.Recommendation{}, fmt.Errorf("%w: answer is for order %s", dispatch.ErrRecommendationFailed, rec.OrderID)
	}

	source := rec.Source
	if source == "" {
		source = dispatch.SourceReasoningService
	}
	return req.Accept(rec.CourierID, rec.Reasoning, rec.EstimatedTime, source)
}

type noopObserver struct{}

func (noopObserver) RecommendationServed(context.Context, dispatch.Source) {}

func (noopObserver) RecommendationFailed(context.Context, error) {}
