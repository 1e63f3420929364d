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

func TestTxCommitAppliesAllWrites(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)

	customer := &model.Customer{
		FullName: "Alice Brown",
		Address:  model.Address{Street: "12 Canal St", City: "Amsterdam", PostalCode: "1011"},
	}
	require.NoError(t, tx.Customers.Create(ctx, customer))

	order := &model.Order{
		CustomerID:  customer.ID,
		OrderDate:   time.Now().UTC(),
		TotalAmount: decimal.RequireFromString("49.98"),
	}
	require.NoError(t, tx.Orders.Create(ctx, order))
	require.NoError(t, tx.Orders.AddItem(ctx, &model.OrderItem{OrderID: order.ID, ProductID: 3, Quantity: 2}))

	require.NoError(t, tx.Commit())

	// Both writes landed together.
	got, err := s.Customers.GetWithOrders(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, got.Orders, 1)
	assert.True(t, got.Orders[0].TotalAmount.Equal(decimal.RequireFromString("49.98")))
}

func TestTxRollbackDiscardsAllWrites(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)

	customer := &model.Customer{
		FullName: "Carol White",
		Address:  model.Address{Street: "9 Elm St", City: "Boston", PostalCode: "02101"},
	}
	require.NoError(t, tx.Customers.Create(ctx, customer))
	require.NoError(t, tx.Orders.Create(ctx, &model.Order{
		CustomerID:  customer.ID,
		OrderDate:   time.Now().UTC(),
		TotalAmount: decimal.RequireFromString("10.00"),
	}))

	require.NoError(t, tx.Rollback())

	_, err = s.Customers.Get(ctx, customer.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTxFailedWriteRollsBackEverything(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)

	customer := &model.Customer{
		FullName: "Dan Green",
		Address:  model.Address{Street: "4 Oak Ave", City: "Denver", PostalCode: "80201"},
	}
	require.NoError(t, tx.Customers.Create(ctx, customer))

	// Second staged write violates a foreign key; the whole unit rolls back.
	err = tx.Orders.Create(ctx, &model.Order{
		CustomerID:  9999,
		OrderDate:   time.Now().UTC(),
		TotalAmount: decimal.RequireFromString("10.00"),
	})
	require.ErrorIs(t, err, apperr.ErrForeignKeyViolation)

	// The transaction is already finished; nothing more can go through it.
	_, err = tx.Customers.Get(ctx, customer.ID)
	assert.ErrorIs(t, err, apperr.ErrTransactionDone)

	// The first write never became visible.
	_, err = s.Customers.Get(ctx, customer.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTxSingleUse(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.ErrorIs(t, tx.Commit(), apperr.ErrTransactionDone)
	assert.ErrorIs(t, tx.Rollback(), apperr.ErrTransactionDone)
	_, err = tx.Products.List(ctx)
	assert.ErrorIs(t, err, apperr.ErrTransactionDone)
	err = tx.Categories.Create(ctx, &model.Category{Name: "Garden"})
	assert.ErrorIs(t, err, apperr.ErrTransactionDone)
}

func TestWithinTxCommitsOnSuccess(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var id uint
	err := s.WithinTx(ctx, func(tx *Tx) error {
		category := &model.Category{Name: "Toys"}
		if err := tx.Categories.Create(ctx, category); err != nil {
			return err
		}
		id = category.ID
		return tx.Products.Create(ctx, &model.Product{
			Name:       "Board Game",
			Price:      decimal.RequireFromString("39.99"),
			CategoryID: id,
		})
	})
	require.NoError(t, err)

	products, err := s.Products.ListByCategory(ctx, id)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Board Game", products[0].Name)
}

func TestWithinTxRollsBackOnError(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var id uint
	err := s.WithinTx(ctx, func(tx *Tx) error {
		category := &model.Category{Name: "Toys"}
		if err := tx.Categories.Create(ctx, category); err != nil {
			return err
		}
		id = category.ID
		// Duplicate product name aborts the unit.
		return tx.Products.Create(ctx, &model.Product{
			Name:       "Laptop",
			Price:      decimal.RequireFromString("1.00"),
			CategoryID: id,
		})
	})
	require.ErrorIs(t, err, apperr.ErrUniqueViolation)

	_, err = s.Categories.Get(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestWithinTxRollsBackOnPanic(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	var id uint
	require.Panics(t, func() {
		_ = s.WithinTx(ctx, func(tx *Tx) error {
			category := &model.Category{Name: "Toys"}
			if err := tx.Categories.Create(ctx, category); err != nil {
				return err
			}
			id = category.ID
			panic("boom")
		})
	})

	_, err := s.Categories.Get(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
