package commands_test

import (
	"context"
	"testing"
	"time"

	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/customer"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/core/domain/model/store"
	"lastmile/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// Mock implementations for testing.
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) Add(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) Get(ctx context.Context, id kernel.ID) (*store.Store, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*store.Store)
	return s, args.Error(1)
}

type MockCourierRepository struct {
	mock.Mock
}

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.ID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*courier.Courier)
	return c, args.Error(1)
}

func (m *MockCourierRepository) GetAll(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	c, _ := args.Get(0).([]*courier.Courier)
	return c, args.Error(1)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Get(ctx context.Context, id kernel.ID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*customer.Customer)
	return c, args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.ID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) StoreRepository() ports.StoreRepository {
	args := m.Called()
	return args.Get(0).(ports.StoreRepository)
}

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

func (m *MockUoW) CustomerRepository() ports.CustomerRepository {
	args := m.Called()
	return args.Get(0).(ports.CustomerRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

// MockUoWFactory returns the unit of work it was given, typed as T.
type MockUoWFactory[T any] struct {
	mock.Mock
}

func (m *MockUoWFactory[T]) Create() T {
	args := m.Called()
	return args.Get(0).(T)
}

type MockPositionFeed struct {
	mock.Mock
}

func (m *MockPositionFeed) PublishPositions(ctx context.Context, couriers []*courier.Courier) error {
	args := m.Called(ctx, couriers)
	return args.Error(0)
}

func (m *MockPositionFeed) RemovePosition(ctx context.Context, courierID kernel.ID) error {
	args := m.Called(ctx, courierID)
	return args.Error(0)
}

func mustLocation(t *testing.T, lat, lng float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lng)
	require.NoError(t, err)
	return loc
}

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewStore(kernel.NewID(kernel.KindStore), "Marjane Californie",
		mustLocation(t, 33.5560, -7.6300), store.Grocery, "")
	require.NoError(t, err)
	return s
}

func newTestCourier(t *testing.T) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(kernel.NewID(kernel.KindCourier), "Yassine",
		mustLocation(t, 33.5850, -7.6100), fixedNow.Add(-time.Hour))
	require.NoError(t, err)
	return c
}

func newTestCustomer(t *testing.T) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(kernel.NewID(kernel.KindCustomer), "Khalid Alami",
		mustLocation(t, 33.5780, -7.6200))
	require.NoError(t, err)
	return c
}

// newTestOrder returns a pending order of c from s; c is flagged as ordering.
func newTestOrder(t *testing.T, c *customer.Customer, s *store.Store) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewID(kernel.KindOrder), c.ID(), s.ID(), fixedNow.Add(-time.Minute))
	require.NoError(t, err)
	require.NoError(t, c.StartOrder(o.ID()))
	return o
}
