package store

import (
	"context"

	"gorm.io/gorm"

	"ecommerce-service/internal/apperr"
	"ecommerce-service/internal/model"
)

// OrderStore persists orders and their line items.
type OrderStore struct {
	conn conn
}

// Create inserts a bare order.
func (s *OrderStore) Create(ctx context.Context, order *model.Order) error {
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	if err := order.Validate(); err != nil {
		return err
	}
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	return s.conn.finishWrite(translate(db.Omit("OrderItems", "Payment").Create(order).Error))
}

// CreateWithItems inserts an order and all its line items in one
// transaction: either everything becomes visible or nothing does. Item
// OrderIDs are assigned from the freshly inserted order.
func (s *OrderStore) CreateWithItems(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	if order.Status == "" {
		order.Status = model.OrderStatusPending
	}
	if err := order.Validate(); err != nil {
		return err
	}
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return err
		}
	}
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	// Under an open Tx this nests as a savepoint, so a failure here
	// still rolls back through finishWrite like any staged write.
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("OrderItems", "Payment").Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Omit("Product").Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return s.conn.finishWrite(translate(err))
}

// AddItem appends a line item to an order.
func (s *OrderStore) AddItem(ctx context.Context, item *model.OrderItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	return s.conn.finishWrite(translate(db.Omit("Product").Create(item).Error))
}

// Get fetches an order by id.
func (s *OrderStore) Get(ctx context.Context, id uint) (*model.Order, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var order model.Order
	if err := db.First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// GetWithItems fetches an order and its line items.
func (s *OrderStore) GetWithItems(ctx context.Context, id uint) (*model.Order, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var order model.Order
	if err := db.Preload("OrderItems").First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// List returns all orders.
func (s *OrderStore) List(ctx context.Context) ([]model.Order, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var orders []model.Order
	if err := db.Order("id").Find(&orders).Error; err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

// ListByCustomer returns the orders belonging to one customer.
func (s *OrderStore) ListByCustomer(ctx context.Context, customerID uint) ([]model.Order, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var orders []model.Order
	if err := db.Where("customer_id = ?", customerID).Order("id").Find(&orders).Error; err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

// UpdateStatus moves an order to a new status.
func (s *OrderStore) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	if !status.Valid() {
		return apperr.Validation("Order", "Status", "is not a recognized status")
	}
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	res := db.Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return s.conn.finishWrite(translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return s.conn.finishWrite(apperr.ErrNotFound)
	}
	return nil
}

// Delete removes an order; items cascade, an attached payment restricts.
func (s *OrderStore) Delete(ctx context.Context, id uint) error {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	res := db.Delete(&model.Order{}, id)
	if res.Error != nil {
		return s.conn.finishWrite(translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return s.conn.finishWrite(apperr.ErrNotFound)
	}
	return nil
}
