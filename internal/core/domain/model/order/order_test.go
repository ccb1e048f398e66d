package order_test

import (
	"testing"
	"time"

	"lastmile/internal/core/domain/model/kernel"
	"lastmile/internal/core/domain/model/order"
	"lastmile/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	orderID := kernel.NewID(kernel.KindOrder)
	customerID := kernel.NewID(kernel.KindCustomer)
	storeID := kernel.NewID(kernel.KindStore)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should create pending order without courier", func(t *testing.T) {
		o, err := order.NewOrder(orderID, customerID, storeID, now)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, orderID, o.ID())
		assert.Equal(t, customerID, o.Customer())
		assert.Equal(t, storeID, o.Store())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, now, o.CreatedAt())
		assert.True(t, o.IsPending())
		assert.True(t, o.IsActive())

		_, ok := o.Courier()
		assert.False(t, ok)
	})

	t.Run("should reject ids of the wrong kind", func(t *testing.T) {
		o, err := order.NewOrder(orderID, storeID, customerID, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "customerId")
		assert.Contains(t, err.Error(), "storeId")
	})

	t.Run("should join every validation error", func(t *testing.T) {
		o, err := order.NewOrder(kernel.ID{}, kernel.ID{}, kernel.ID{}, time.Time{})

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "createdAt")
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should reject orders built outside the constructor", func(t *testing.T) {
		var nilOrder *order.Order
		assert.Equal(t, order.ErrOrderIsNotConstructed, nilOrder.Validate())
		assert.Equal(t, order.ErrOrderIsNotConstructed, (&order.Order{}).Validate())
	})

	t.Run("should keep courier and status paired through the lifecycle", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Validate())

		require.NoError(t, o.Assign(kernel.NewID(kernel.KindCourier)))
		require.NoError(t, o.Validate())

		require.NoError(t, o.BeginTransit())
		require.NoError(t, o.Validate())

		require.NoError(t, o.Deliver())
		require.NoError(t, o.Validate())
	})

	t.Run("should keep a pending order valid after a rejected assignment", func(t *testing.T) {
		o := newPendingOrder(t)

		require.Error(t, o.Assign(kernel.NewID(kernel.KindStore)))

		require.NoError(t, o.Validate())
		_, ok := o.Courier()
		assert.False(t, ok)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	courierID := kernel.NewID(kernel.KindCourier)

	t.Run("should walk pending, assigned, in-transit, delivered", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Assign(courierID))
		got, ok := o.Courier()
		require.True(t, ok)
		assert.Equal(t, courierID, got)
		assert.Equal(t, order.Assigned, o.Status())

		require.NoError(t, o.BeginTransit())
		assert.Equal(t, order.InTransit, o.Status())

		require.NoError(t, o.Deliver())
		assert.Equal(t, order.Delivered, o.Status())
		assert.False(t, o.IsActive())

		got, ok = o.Courier()
		require.True(t, ok)
		assert.Equal(t, courierID, got)
	})

	t.Run("should deliver straight from assigned", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Assign(courierID))

		require.NoError(t, o.Deliver())
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("should reject second assignment and keep the first courier", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Assign(courierID))

		err := o.Assign(kernel.NewID(kernel.KindCourier))

		require.ErrorIs(t, err, errs.ErrStateIsInvalid)
		got, _ := o.Courier()
		assert.Equal(t, courierID, got)
		assert.Equal(t, order.Assigned, o.Status())
	})

	t.Run("should reject assignment of delivered order", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Assign(courierID))
		require.NoError(t, o.Deliver())

		err := o.Assign(kernel.NewID(kernel.KindCourier))

		require.ErrorIs(t, err, errs.ErrStateIsInvalid)
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("should reject non courier id", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.Assign(kernel.NewID(kernel.KindStore))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, o.IsPending())
	})

	t.Run("should reject transit and delivery while pending", func(t *testing.T) {
		o := newPendingOrder(t)

		require.ErrorIs(t, o.BeginTransit(), errs.ErrStateIsInvalid)
		require.ErrorIs(t, o.Deliver(), errs.ErrStateIsInvalid)
		assert.True(t, o.IsPending())
	})
}

func TestOrder_Clone(t *testing.T) {
	o := newPendingOrder(t)

	c := o.Clone()
	require.NoError(t, c.Assign(kernel.NewID(kernel.KindCourier)))

	assert.True(t, o.IsPending())
	assert.True(t, o.IsEqual(c))
	require.NoError(t, c.Validate())
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewID(kernel.KindOrder),
		kernel.NewID(kernel.KindCustomer),
		kernel.NewID(kernel.KindStore),
		time.Now(),
	)
	require.NoError(t, err)
	return o
}
