package commands_test

import (
	"testing"

	"lastmile/internal/core/application/usecases/commands"
	"lastmile/internal/core/domain/model/courier"
	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type assignFixture struct {
	order       *order.Order
	courier     *courier.Courier
	orderRepo   *MockOrderRepository
	courierRepo *MockCourierRepository
	uow         *MockUoW
	factory     *MockUoWFactory[commands.OrderUoW]
}

func newAssignFixture(t *testing.T) *assignFixture {
	t.Helper()
	ctx := t.Context()
	f := &assignFixture{
		order:       newTestOrder(t, newTestCustomer(t), newTestStore(t)),
		courier:     newTestCourier(t),
		orderRepo:   new(MockOrderRepository),
		courierRepo: new(MockCourierRepository),
		uow:         new(MockUoW),
		factory:     new(MockUoWFactory[commands.OrderUoW]),
	}

	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("OrderRepository").Return(f.orderRepo)
	f.uow.On("CourierRepository").Return(f.courierRepo)
	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.orderRepo.On("Get", ctx, f.order.ID()).Return(f.order, nil).Once()
	f.courierRepo.On("Get", ctx, f.courier.ID()).Return(f.courier, nil).Once()
	return f
}

func TestNewAssignCourierCommand(t *testing.T) {
	orderID := kernel.NewID(kernel.KindOrder)
	courierID := kernel.NewID(kernel.KindCourier)

	cmd, err := commands.NewAssignCourierCommand(orderID, courierID)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, courierID, cmd.CourierID())

	_, err = commands.NewAssignCourierCommand(courierID, orderID)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAssignCourierCommandHandler_Handle(t *testing.T) {
	t.Run("should assign order and make courier busy", func(t *testing.T) {
		// Given
		ctx := t.Context()
		f := newAssignFixture(t)
		f.orderRepo.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
			courierID, ok := o.Courier()
			return o.Status() == order.Assigned && ok && courierID == f.courier.ID()
		})).Return(nil).Once()
		f.courierRepo.On("Update", ctx, mock.MatchedBy(func(c *courier.Courier) bool {
			return c.Status() == courier.Busy && c.LastUpdated().Equal(fixedNow)
		})).Return(nil).Once()
		f.uow.On("Commit", ctx).Return(nil).Once()

		cmd, err := commands.NewAssignCourierCommand(f.order.ID(), f.courier.ID())
		require.NoError(t, err)
		handler := commands.NewAssignCourierCommandHandler(f.factory, clock)

		// When
		err = handler.Handle(ctx, cmd)

		// Then
		require.NoError(t, err)
		f.uow.AssertExpectations(t)
		f.orderRepo.AssertExpectations(t)
		f.courierRepo.AssertExpectations(t)
	})

	t.Run("should reject a second assignment", func(t *testing.T) {
		// Given
		ctx := t.Context()
		f := newAssignFixture(t)
		require.NoError(t, f.order.Assign(kernel.NewID(kernel.KindCourier)))

		cmd, err := commands.NewAssignCourierCommand(f.order.ID(), f.courier.ID())
		require.NoError(t, err)
		handler := commands.NewAssignCourierCommandHandler(f.factory, clock)

		// When
		err = handler.Handle(ctx, cmd)

		// Then
		require.ErrorIs(t, err, errs.ErrStateIsInvalid)
		f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.courierRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should reject a delivered order", func(t *testing.T) {
		ctx := t.Context()
		f := newAssignFixture(t)
		require.NoError(t, f.order.Assign(kernel.NewID(kernel.KindCourier)))
		require.NoError(t, f.order.Deliver())

		cmd, err := commands.NewAssignCourierCommand(f.order.ID(), f.courier.ID())
		require.NoError(t, err)
		handler := commands.NewAssignCourierCommandHandler(f.factory, clock)

		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrStateIsInvalid)
		f.uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should reject a busy courier", func(t *testing.T) {
		// Given
		ctx := t.Context()
		f := newAssignFixture(t)
		require.NoError(t, f.courier.TakeOrder(fixedNow))

		cmd, err := commands.NewAssignCourierCommand(f.order.ID(), f.courier.ID())
		require.NoError(t, err)
		handler := commands.NewAssignCourierCommandHandler(f.factory, clock)

		// When
		err = handler.Handle(ctx, cmd)

		// Then
		require.ErrorIs(t, err, errs.ErrObjectIsUnavailable)
		f.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		f.uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("should reject an offline courier", func(t *testing.T) {
		ctx := t.Context()
		f := newAssignFixture(t)
		require.NoError(t, f.courier.GoOffline(fixedNow))

		cmd, err := commands.NewAssignCourierCommand(f.order.ID(), f.courier.ID())
		require.NoError(t, err)
		handler := commands.NewAssignCourierCommandHandler(f.factory, clock)

		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectIsUnavailable)
	})
}
