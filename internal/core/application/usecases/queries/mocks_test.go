package queries_test

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
	"lastmile/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSnapshotReader struct {
	mock.Mock
}

func (m *MockSnapshotReader) Snapshot(ctx context.Context) (ports.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.Snapshot), args.Error(1)
}

func (m *MockSnapshotReader) DispatchSnapshot(ctx context.Context, orderID kernel.ID) (ports.DispatchSnapshot, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(ports.DispatchSnapshot), args.Error(1)
}

type MockRecommender struct {
	mock.Mock
}

func (m *MockRecommender) Recommend(ctx context.Context, req dispatch.Request) (dispatch.Recommendation, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dispatch.Recommendation), args.Error(1)
}

var now = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

// world is a small consistent snapshot: one store, two customers, three
// couriers (available, busy, offline) and two orders (assigned, delivered).
type world struct {
	store     *store.Store
	customers []*customer.Customer
	couriers  []*courier.Courier
	orders    []*order.Order
}

func newWorld(t *testing.T) world {
	t.Helper()
	loc := func(lat, lng float64) kernel.Location {
		l, err := kernel.NewLocation(lat, lng)
		require.NoError(t, err)
		return l
	}

	s, err := store.NewStore(kernel.NewID(kernel.KindStore), "Pharmacie Centrale", loc(33.5950, -7.6180), store.Pharmacy, "")
	require.NoError(t, err)

	var w world
	w.store = s
	for _, name := range []string{"Khalid Alami", "Meryem Tazi"} {
		c, err := customer.NewCustomer(kernel.NewID(kernel.KindCustomer), name, loc(33.58, -7.62))
		require.NoError(t, err)
		w.customers = append(w.customers, c)
	}
	for _, name := range []string{"Yassine", "Sara", "Omar"} {
		c, err := courier.NewCourier(kernel.NewID(kernel.KindCourier), name, loc(33.59, -7.61), now)
		require.NoError(t, err)
		w.couriers = append(w.couriers, c)
	}

	assigned, err := order.NewOrder(kernel.NewID(kernel.KindOrder), w.customers[0].ID(), s.ID(), now)
	require.NoError(t, err)
	require.NoError(t, w.customers[0].StartOrder(assigned.ID()))
	require.NoError(t, assigned.Assign(w.couriers[1].ID()))
	require.NoError(t, w.couriers[1].TakeOrder(now))

	delivered, err := order.NewOrder(kernel.NewID(kernel.KindOrder), w.customers[1].ID(), s.ID(), now)
	require.NoError(t, err)
	require.NoError(t, delivered.Assign(w.couriers[0].ID()))
	require.NoError(t, delivered.Deliver())

	require.NoError(t, w.couriers[2].GoOffline(now))
	w.orders = []*order.Order{assigned, delivered}
	return w
}

func (w world) snapshot() ports.Snapshot {
	return ports.Snapshot{
		Stores:    []*store.Store{w.store},
		Couriers:  w.couriers,
		Customers: w.customers,
		Orders:    w.orders,
	}
}
