package services_test

import (
	"context"
	"testing"
	"time"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/customer"
	"lastmile/internal/core/domain/model/dispatch"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/store"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRecommender struct{ mock.Mock }

func (m *MockRecommender) Recommend(ctx context.Context, req dispatch.Request) (dispatch.Recommendation, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dispatch.Recommendation), args.Error(1)
}

type MockObserver struct{ mock.Mock }

func (m *MockObserver) RecommendationServed(ctx context.Context, source dispatch.Source) {
	m.Called(ctx, source)
}

func (m *MockObserver) RecommendationFailed(ctx context.Context, err error) {
	m.Called(ctx, err)
}

// newRequest builds the store S (33.60,-7.61) / customer U (33.58,-7.62) request
// with one available courier per latitude, all on the store meridian.
func newRequest(t *testing.T, courierLats ...float64) dispatch.Request {
	t.Helper()
	s, err := store.NewStore(kernel.NewID(kernel.KindStore), "S", mustLocation(t, 33.60, -7.61), store.Restaurant, "")
	require.NoError(t, err)
	c, err := customer.NewCustomer(kernel.NewID(kernel.KindCustomer), "U", mustLocation(t, 33.58, -7.62))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewID(kernel.KindOrder), c.ID(), s.ID(), time.Now())
	require.NoError(t, err)

	couriers := make([]*courier.Courier, 0, len(courierLats))
	for _, lat := range courierLats {
		cr, err := courier.NewCourier(kernel.NewID(kernel.KindCourier), "C", mustLocation(t, lat, -7.61), time.Now())
		require.NoError(t, err)
		couriers = append(couriers, cr)
	}

	req, err := dispatch.NewRequest(o, c, s, couriers)
	require.NoError(t, err)
	return req
}

func mustLocation(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return loc
}
