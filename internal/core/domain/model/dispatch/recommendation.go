package dispatch

import (
	"fmt"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"
)

// Source names the recommender that produced a Recommendation.
type Source string

const (
	SourceReasoningService Source = "reasoning-service"
	SourceNearestFallback  Source = "nearest-fallback"
)

func (s Source) Validate() error {
	switch s {
	case SourceReasoningService, SourceNearestFallback:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("source", fmt.Errorf("%q is not a known source", string(s)))
	}
}

func (s Source) String() string {
	return string(s)
}

// Recommendation is an advisory courier suggestion for a pending order.
// It is derived on request and never stored.
type Recommendation struct {
	OrderID       kernel.ID
	CourierID     kernel.ID
	Reasoning     string
	EstimatedTime string
	Source        Source

	// DistanceToStore is the suggested courier's distance to the store in km.
	DistanceToStore float64
}

// IsValidFor reports whether the recommendation can still be acted on:
// it targets o and o is still pending.
func (r Recommendation) IsValidFor(o *order.Order) bool {
	if o.Validate() != nil {
		return false
	}
	return r.OrderID == o.ID() && o.IsPending()
}
