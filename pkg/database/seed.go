package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ecommerce-service/internal/model"
)

// Seed inserts the fixed bootstrap data set: 3 categories, 4 products,
// 3 customers, 4 orders, 5 order items and 3 payments. It is idempotent
// and skips entirely once any category exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to inspect seed state: %w", err)
	}
	if count > 0 {
		return nil
	}

	categories := []model.Category{
		{ID: 1, Name: "Electronics"},
		{ID: 2, Name: "Books"},
		{ID: 3, Name: "Clothing"},
	}

	products := []model.Product{
		{ID: 1, Name: "Smartphone", Price: decimal.RequireFromString("799.99"), CategoryID: 1, Version: uuid.NewString()},
		{ID: 2, Name: "Laptop", Price: decimal.RequireFromString("1299.99"), CategoryID: 1, Version: uuid.NewString()},
		{ID: 3, Name: "Fiction Book", Price: decimal.RequireFromString("19.99"), CategoryID: 2, Version: uuid.NewString()},
		{ID: 4, Name: "T-Shirt", Price: decimal.RequireFromString("29.99"), CategoryID: 3, Version: uuid.NewString()},
	}

	customers := []model.Customer{
		{ID: 1, FullName: "John Smith", Address: model.Address{Street: "123 Main St", City: "New York", PostalCode: "10001"}},
		{ID: 2, FullName: "Jane Doe", Address: model.Address{Street: "456 Elm St", City: "Los Angeles", PostalCode: "90001"}},
		{ID: 3, FullName: "Bob Wilson", Address: model.Address{Street: "789 Oak Ave", City: "Chicago", PostalCode: "60601"}},
	}

	orders := []model.Order{
		{ID: 1, CustomerID: 1, OrderDate: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), TotalAmount: decimal.RequireFromString("2099.98"), Status: model.OrderStatusDelivered},
		{ID: 2, CustomerID: 2, OrderDate: time.Date(2024, 2, 20, 14, 45, 0, 0, time.UTC), TotalAmount: decimal.RequireFromString("19.99"), Status: model.OrderStatusShipped},
		{ID: 3, CustomerID: 1, OrderDate: time.Date(2024, 3, 10, 9, 15, 0, 0, time.UTC), TotalAmount: decimal.RequireFromString("829.98"), Status: model.OrderStatusProcessing},
		{ID: 4, CustomerID: 3, OrderDate: time.Date(2024, 3, 25, 16, 20, 0, 0, time.UTC), TotalAmount: decimal.RequireFromString("29.99"), Status: model.OrderStatusPending},
	}

	orderItems := []model.OrderItem{
		{ID: 1, OrderID: 1, ProductID: 1, Quantity: 1},
		{ID: 2, OrderID: 1, ProductID: 2, Quantity: 1},
		{ID: 3, OrderID: 2, ProductID: 3, Quantity: 1},
		{ID: 4, OrderID: 3, ProductID: 1, Quantity: 1},
		{ID: 5, OrderID: 4, ProductID: 4, Quantity: 1},
	}

	payments := []model.PaymentRecord{
		{ID: 1, OrderID: 1, Amount: decimal.RequireFromString("2099.98"), PaymentDate: time.Date(2024, 1, 15, 10, 35, 0, 0, time.UTC), PaymentType: string(model.PaymentMethodCreditCard), CardNumber: strptr("4532-1234-5678-9010")},
		{ID: 2, OrderID: 2, Amount: decimal.RequireFromString("19.99"), PaymentDate: time.Date(2024, 2, 20, 14, 50, 0, 0, time.UTC), PaymentType: string(model.PaymentMethodPayPal), PayPalEmail: strptr("jane.doe@example.com")},
		{ID: 3, OrderID: 3, Amount: decimal.RequireFromString("829.98"), PaymentDate: time.Date(2024, 3, 10, 9, 20, 0, 0, time.UTC), PaymentType: string(model.PaymentMethodCreditCard), CardNumber: strptr("5425-2334-3010-9903")},
	}

	// Parents before dependents so foreign keys hold during insert.
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		if err := tx.Create(&customers).Error; err != nil {
			return fmt.Errorf("failed to seed customers: %w", err)
		}
		if err := tx.Create(&orders).Error; err != nil {
			return fmt.Errorf("failed to seed orders: %w", err)
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return fmt.Errorf("failed to seed order items: %w", err)
		}
		if err := tx.Create(&payments).Error; err != nil {
			return fmt.Errorf("failed to seed payments: %w", err)
		}
		return resyncIDSequences(tx)
	})
}

// resyncIDSequences realigns each serial id sequence with the explicit
// ids the seed inserts. Inserting with an explicit id never advances a
// postgres sequence, so without this the first runtime insert on every
// seeded table would be handed id 1 again and fail on the primary key.
// sqlite derives the next rowid from max(id) and needs no fixup.
func resyncIDSequences(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	for _, table := range []string{"categories", "products", "customers", "orders", "order_items", "payments"} {
		stmt := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), (SELECT MAX(id) FROM %s))", table, table)
		if err := tx.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to resync %s id sequence: %w", table, err)
		}
	}
	return nil
}

func strptr(s string) *string { return &s }
