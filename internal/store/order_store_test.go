package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-service/internal/apperr"
	"ecommerce-service/internal/model"
)

func TestOrderCreateAndGetWithItems(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	order := &model.Order{
		CustomerID:  2,
		OrderDate:   time.Now().UTC(),
		TotalAmount: decimal.RequireFromString("819.98"),
	}
	require.NoError(t, s.Orders.Create(ctx, order))
	require.NotZero(t, order.ID)
	assert.Equal(t, model.OrderStatusPending, order.Status)

	require.NoError(t, s.Orders.AddItem(ctx, &model.OrderItem{OrderID: order.ID, ProductID: 1, Quantity: 1}))
	require.NoError(t, s.Orders.AddItem(ctx, &model.OrderItem{OrderID: order.ID, ProductID: 3, Quantity: 1}))

	got, err := s.Orders.GetWithItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.OrderItems, 2)
	assert.EqualValues(t, 1, got.OrderItems[0].ProductID)
	assert.EqualValues(t, 3, got.OrderItems[1].ProductID)
}

func TestOrderCreateWithItems(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	order := &model.Order{
		CustomerID:  3,
		OrderDate:   time.Now().UTC(),
		TotalAmount: decimal.RequireFromString("1319.98"),
	}
	items := []model.OrderItem{
		{ProductID: 2, Quantity: 1},
		{ProductID: 3, Quantity: 1},
	}
	require.NoError(t, s.Orders.CreateWithItems(ctx, order, items))

	got, err := s.Orders.GetWithItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.OrderItems, 2)
	assert.Equal(t, order.ID, got.OrderItems[0].OrderID)
	assert.Equal(t, order.ID, got.OrderItems[1].OrderID)
}

func TestOrderCreateWithItems_AtomicOnItemFailure(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	order := &model.Order{
		CustomerID:  3,
		OrderDate:   time.Now().UTC(),
		TotalAmount: decimal.RequireFromString("10.00"),
	}
	items := []model.OrderItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 9999, Quantity: 1}, // no such product
	}
	err := s.Orders.CreateWithItems(ctx, order, items)
	require.ErrorIs(t, err, apperr.ErrForeignKeyViolation)

	// Neither the order nor the first item survived.
	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.EqualValues(t, 4, orderCount)
	var itemCount int64
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&itemCount).Error)
	assert.EqualValues(t, 5, itemCount)
}

func TestOrderItemValidation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	err := s.Orders.AddItem(ctx, &model.OrderItem{OrderID: 1, ProductID: 1, Quantity: 0})
	assert.True(t, apperr.IsValidation(err))

	err = s.Orders.AddItem(ctx, &model.OrderItem{OrderID: 1, Quantity: 1})
	assert.True(t, apperr.IsValidation(err))
}

func TestOrderItem_ProductDeleteRestricted(t *testing.T) {
	_, db := newTestStore(t)
	ctx := context.Background()

	// Physical removal of a referenced product is blocked; normal flow
	// never does it, which is why product deletion is logical.
	err := db.WithContext(ctx).Delete(&model.Product{}, 1).Error
	require.Error(t, err)
}

func TestOrderStatusTransitions(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Orders.UpdateStatus(ctx, 4, model.OrderStatusProcessing))

	order, err := s.Orders.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, order.Status)

	err = s.Orders.UpdateStatus(ctx, 4, "Lost")
	assert.True(t, apperr.IsValidation(err))

	err = s.Orders.UpdateStatus(ctx, 99, model.OrderStatusShipped)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestOrderCreate_MissingCustomer(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	order := &model.Order{
		CustomerID:  99,
		OrderDate:   time.Now().UTC(),
		TotalAmount: decimal.RequireFromString("1.00"),
	}
	err := s.Orders.Create(ctx, order)
	require.ErrorIs(t, err, apperr.ErrForeignKeyViolation)
}

func TestOrderDelete_CascadesToItems(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	// Order 4 has no payment, so the delete goes through.
	require.NoError(t, s.Orders.Delete(ctx, 4))

	var itemCount int64
	require.NoError(t, db.Model(&model.OrderItem{}).Where("order_id = ?", 4).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestOrderListByCustomer(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	orders, err := s.Orders.ListByCustomer(ctx, 1)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, model.OrderStatusDelivered, orders[0].Status)
	assert.Equal(t, model.OrderStatusProcessing, orders[1].Status)
}
