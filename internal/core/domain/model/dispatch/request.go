package dispatch

import (
	"errors"
	"fmt"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/customer"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/store"
	"lastmile/internal/pkg/errs"
)

var (
	// ErrNoCouriersAvailable is returned when no courier can be recommended for an order.
	ErrNoCouriersAvailable = errors.New("no couriers available")
	// ErrRecommendationFailed marks a recommender answer that cannot be served.
	ErrRecommendationFailed = errors.New("recommendation failed")
	// ErrRecommenderUnreachable marks a recommender that gave no usable answer at
	// all, as opposed to an answer that was rejected. It wraps ErrRecommendationFailed.
	ErrRecommenderUnreachable = fmt.Errorf("%w: recommender unreachable", ErrRecommendationFailed)
)

// Place is a named point of a request: the customer or the store.
type Place struct {
	ID       kernel.ID
	Name     string
	Location kernel.Location
}

// Candidate is an available courier with its distance to the store.
type Candidate struct {
	CourierID       kernel.ID
	Name            string
	Location        kernel.Location
	DistanceToStore float64
}

// Request is the immutable input of a recommendation: a point-in-time view of
// the order, its endpoints and every available courier.
type Request struct {
	OrderID  kernel.ID
	Customer Place
	Store    Place
	// Candidates keeps the store insertion order of the couriers.
	Candidates []Candidate
	// DistanceStoreToCustomer is the same for every candidate and computed once.
	DistanceStoreToCustomer float64
}

// NewRequest builds a Request from detached copies of the aggregates.
//
// Returns:
//   - Request: ready to be handed to a Recommender
//   - error: errs.StateIsInvalidError when the order is not pending,
//     errs.ValueIsInvalidError when customer or store do not belong to the order,
//     ErrNoCouriersAvailable when no courier is Available
//
// Example:
//
//	req, err := dispatch.NewRequest(o, c, s, couriers)
//	if errors.Is(err, dispatch.ErrNoCouriersAvailable) {
//	    // nothing to recommend
//	}
func NewRequest(o *order.Order, c *customer.Customer, s *store.Store, couriers []*courier.Courier) (Request, error) {
	if err := errors.Join(o.Validate(), c.Validate(), s.Validate()); err != nil {
		return Request{}, err
	}
	if !o.IsPending() {
		return Request{}, errs.NewStateIsInvalidError("order", o.Status().String(), "recommend a courier for")
	}
	if o.Customer() != c.ID() {
		return Request{}, errs.NewValueIsInvalidErrorWithCause("customer",
			fmt.Errorf("%s does not belong to %s", c.ID(), o.ID()))
	}
	if o.Store() != s.ID() {
		return Request{}, errs.NewValueIsInvalidErrorWithCause("store",
			fmt.Errorf("%s does not belong to %s", s.ID(), o.ID()))
	}

	req := Request{
		OrderID:                 o.ID(),
		Customer:                Place{ID: c.ID(), Name: c.Name(), Location: c.Location()},
		Store:                   Place{ID: s.ID(), Name: s.Name(), Location: s.Location()},
		DistanceStoreToCustomer: kernel.Distance(s.Location(), c.Location()),
	}
	for _, cr := range couriers {
		if cr == nil || !cr.IsAvailable() {
			continue
		}
		req.Candidates = append(req.Candidates, Candidate{
			CourierID:       cr.ID(),
			Name:            cr.Name(),
			Location:        cr.Location(),
			DistanceToStore: kernel.Distance(cr.Location(), s.Location()),
		})
	}
	if len(req.Candidates) == 0 {
		return Request{}, ErrNoCouriersAvailable
	}

	return req, nil
}

// Candidate looks up an available courier of the request by id.
func (r Request) Candidate(courierID kernel.ID) (Candidate, bool) {
	for _, c := range r.Candidates {
		if c.CourierID == courierID {
			return c, true
		}
	}
	return Candidate{}, false
}

// Accept turns a recommender answer into a Recommendation. Every field is
// required and the courier must be one of the candidates; otherwise the
// returned error wraps ErrRecommendationFailed.
func (r Request) Accept(courierID kernel.ID, reasoning, estimatedTime string, source Source) (Recommendation, error) {
	if courierID.IsZero() {
		return Recommendation{}, fmt.Errorf("%w: suggested courier is empty", ErrRecommendationFailed)
	}
	candidate, ok := r.Candidate(courierID)
	if !ok {
		return Recommendation{}, fmt.Errorf("%w: %s is not an available courier", ErrRecommendationFailed, courierID)
	}
	if reasoning == "" {
		return Recommendation{}, fmt.Errorf("%w: reasoning is empty", ErrRecommendationFailed)
	}
	if estimatedTime == "" {
		return Recommendation{}, fmt.Errorf("%w: estimated time is empty", ErrRecommendationFailed)
	}
	if err := source.Validate(); err != nil {
		return Recommendation{}, fmt.Errorf("%w: %w", ErrRecommendationFailed, err)
	}

	return Recommendation{
		OrderID:       r.OrderID,
		CourierID:     courierID,
		Reasoning:     reasoning,
		EstimatedTime: estimatedTime,
		Source:        source,

		DistanceToStore: candidate.DistanceToStore,
	}, nil
}
