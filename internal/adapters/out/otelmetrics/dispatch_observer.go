// Package otelmetrics records dispatch outcomes as OpenTelemetry metrics.
package otelmetrics

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"lastmile/internal/core/domain/model/dispatch"
)

const (
	RecommendationsMetric        = "dispatch.recommendations"
	RecommendationFailuresMetric = "dispatch.recommendation_failures"
)

// DispatchObserver implements ports.DispatchObserver with two counters:
// served recommendations by source, and absorbed primary failures by reason.
type DispatchObserver struct {
	served metric.Int64Counter
	failed metric.Int64Counter
}

// NewDispatchObserver creates the counters on meter.
//
// Example:
//
//	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
//	observer, err := otelmetrics.NewDispatchObserver(provider.Meter("lastmile"))
func NewDispatchObserver(meter metric.Meter) (*DispatchObserver, error) {
	served, err := meter.Int64Counter(
		RecommendationsMetric,
		metric.WithDescription("Courier recommendations served"),
		metric.WithUnit("{recommendation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", RecommendationsMetric, err)
	}

	failed, err := meter.Int64Counter(
		RecommendationFailuresMetric,
		metric.WithDescription("Primary recommender failures answered by the fallback"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s counter: %w", RecommendationFailuresMetric, err)
	}

	return &DispatchObserver{served: served, failed: failed}, nil
}

func (o *DispatchObserver) RecommendationServed(ctx context.Context, source dispatch.Source) {
	o.served.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source.String())))
}

func (o *DispatchObserver) RecommendationFailed(ctx context.Context, err error) {
	o.failed.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", failureReason(err))))
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, dispatch.ErrRecommenderUnreachable):
		return "unreachable"
	default:
		return "rejected"
	}
}
