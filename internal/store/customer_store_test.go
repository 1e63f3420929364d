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

func TestCustomerAddressRoundTrip(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	customer := &model.Customer{
		FullName: "Alice Johnson",
		Address:  model.Address{Street: "456 Oak St", City: "Denver", PostalCode: "80202"},
	}
	require.NoError(t, s.Customers.Create(ctx, customer))

	got, err := s.Customers.Get(ctx, customer.ID)
	require.NoError(t, err)
	assert.Equal(t, "456 Oak St", got.Address.Street)
	assert.Equal(t, "Denver", got.Address.City)
	assert.Equal(t, "80202", got.Address.PostalCode)
}

func TestCustomerValidation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	err := s.Customers.Create(ctx, &model.Customer{})
	assert.True(t, apperr.IsValidation(err))

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'x'
	}
	err = s.Customers.Create(ctx, &model.Customer{
		FullName: "Valid Name",
		Address:  model.Address{Street: string(long)},
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestCustomerDelete_CascadesToOrdersAndItems(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	// Customer 3 owns order 4, which has no payment blocking it.
	require.NoError(t, s.Customers.Delete(ctx, 3))

	_, err := s.Orders.Get(ctx, 4)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	var itemCount int64
	require.NoError(t, db.Model(&model.OrderItem{}).Where("order_id = ?", 4).Count(&itemCount).Error)
	assert.Zero(t, itemCount)
}

func TestCustomerDelete_BlockedByPaymentRestrict(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// Orders 1 and 3 belong to customer 1 and carry payments; the
	// cascade cannot pass the RESTRICT on payments.order_id.
	err := s.Customers.Delete(ctx, 1)
	require.ErrorIs(t, err, apperr.ErrForeignKeyViolation)

	// Removing the payments unblocks the cascade.
	require.NoError(t, s.Payments.Delete(ctx, 1))
	require.NoError(t, s.Payments.Delete(ctx, 3))
	require.NoError(t, s.Customers.Delete(ctx, 1))

	orders, err := s.Orders.ListByCustomer(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestTopCustomersView(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	top, err := s.Customers.TopCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, top, 3)

	// John Smith: 2099.98 + 829.98; Bob Wilson: 29.99; Jane Doe: 19.99.
	assert.Equal(t, "John Smith", top[0].CustomerName)
	assert.True(t, top[0].TotalSpent.Equal(decimal.RequireFromString("2929.96")))
	assert.Equal(t, "Bob Wilson", top[1].CustomerName)
	assert.True(t, top[1].TotalSpent.Equal(decimal.RequireFromString("29.99")))
	assert.Equal(t, "Jane Doe", top[2].CustomerName)
	assert.True(t, top[2].TotalSpent.Equal(decimal.RequireFromString("19.99")))
}

func TestTopCustomersView_RecomputedAndZeroForOrderless(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	customer := &model.Customer{
		FullName: "Alice Johnson",
		Address:  model.Address{Street: "456 Oak St", City: "Denver", PostalCode: "80202"},
	}
	require.NoError(t, s.Customers.Create(ctx, customer))

	top, err := s.Customers.TopCustomers(ctx)
	require.NoError(t, err)
	require.Len(t, top, 4)

	// No orders yet: total spent reads 0.
	last := top[len(top)-1]
	assert.Equal(t, "Alice Johnson", last.CustomerName)
	assert.True(t, last.TotalSpent.IsZero())

	// A new order shows up on the next read without any refresh step.
	order := &model.Order{
		CustomerID:  customer.ID,
		OrderDate:   time.Now().UTC(),
		TotalAmount: decimal.RequireFromString("5000.00"),
		Status:      model.OrderStatusPending,
	}
	require.NoError(t, s.Orders.Create(ctx, order))

	top, err = s.Customers.TopCustomers(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", top[0].CustomerName)
	assert.True(t, top[0].TotalSpent.Equal(decimal.RequireFromString("5000.00")))
}

func TestCustomerGetWithOrders(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	customer, err := s.Customers.GetWithOrders(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "John Smith", customer.FullName)
	require.Len(t, customer.Orders, 2)
	assert.EqualValues(t, 1, customer.Orders[0].ID)
	assert.EqualValues(t, 3, customer.Orders[1].ID)
}
