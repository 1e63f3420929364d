package store

import (
	"context"

	"ecommerce-service/internal/apperr"
	"ecommerce-service/internal/model"
)

// CustomerStore persists customers and exposes the top-customers view.
type CustomerStore struct {
	conn conn
}

// Create inserts a customer with its embedded address value.
func (s *CustomerStore) Create(ctx context.Context, customer *model.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	return s.conn.finishWrite(translate(db.Create(customer).Error))
}

// Get fetches a customer by id.
func (s *CustomerStore) Get(ctx context.Context, id uint) (*model.Customer, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var customer model.Customer
	if err := db.First(&customer, id).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

// GetWithOrders fetches a customer and its orders through the compiled
// query cache.
func (s *CustomerStore) GetWithOrders(ctx context.Context, id uint) (*model.Customer, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	return queries.customerWithOrders(ctx, db, id)
}

// List returns all customers.
func (s *CustomerStore) List(ctx context.Context) ([]model.Customer, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var customers []model.Customer
	if err := db.Order("id").Find(&customers).Error; err != nil {
		return nil, translate(err)
	}
	return customers, nil
}

// Update rewrites the customer's name and address.
func (s *CustomerStore) Update(ctx context.Context, customer *model.Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	res := db.Model(&model.Customer{}).Where("id = ?", customer.ID).
		Updates(map[string]interface{}{
			"full_name": customer.FullName,
			"address":   customer.Address,
		})
	if res.Error != nil {
		return s.conn.finishWrite(translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return s.conn.finishWrite(apperr.ErrNotFound)
	}
	return nil
}

// Delete removes a customer; the engine cascades to its orders and
// their items. A payment on any of those orders restricts the delete
// and surfaces as a foreign key violation.
func (s *CustomerStore) Delete(ctx context.Context, id uint) error {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	res := db.Delete(&model.Customer{}, id)
	if res.Error != nil {
		return s.conn.finishWrite(translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return s.conn.finishWrite(apperr.ErrNotFound)
	}
	return nil
}

// TopCustomers reads the derived spending view, biggest spenders first.
func (s *CustomerStore) TopCustomers(ctx context.Context) ([]model.TopCustomer, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var top []model.TopCustomer
	if err := db.Order("total_spent DESC").Find(&top).Error; err != nil {
		return nil, translate(err)
	}
	return top, nil
}
