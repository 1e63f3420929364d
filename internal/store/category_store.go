package store

import (
	"context"

	"ecommerce-service/internal/apperr"
	"ecommerce-service/internal/model"
)

// CategoryStore persists categories.
type CategoryStore struct {
	conn conn
}

// Create inserts a category after validating it against the declared
// schema limits.
func (s *CategoryStore) Create(ctx context.Context, category *model.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	return s.conn.finishWrite(translate(db.Create(category).Error))
}

// Get fetches a category by id.
func (s *CategoryStore) Get(ctx context.Context, id uint) (*model.Category, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var category model.Category
	if err := db.First(&category, id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// GetWithProducts fetches a category with its non-deleted products
// through the compiled query cache.
func (s *CategoryStore) GetWithProducts(ctx context.Context, id uint) (*model.Category, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	return queries.categoryWithProducts(ctx, db, id)
}

// List returns all categories.
func (s *CategoryStore) List(ctx context.Context) ([]model.Category, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var categories []model.Category
	if err := db.Order("id").Find(&categories).Error; err != nil {
		return nil, translate(err)
	}
	return categories, nil
}

// Update renames a category.
func (s *CategoryStore) Update(ctx context.Context, category *model.Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	res := db.Model(&model.Category{}).Where("id = ?", category.ID).
		Update("name", category.Name)
	if res.Error != nil {
		return s.conn.finishWrite(translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return s.conn.finishWrite(apperr.ErrNotFound)
	}
	return nil
}

// Delete removes a category. The delete is restricted while products
// still reference it and surfaces as a foreign key violation.
func (s *CategoryStore) Delete(ctx context.Context, id uint) error {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	res := db.Delete(&model.Category{}, id)
	if res.Error != nil {
		return s.conn.finishWrite(translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return s.conn.finishWrite(apperr.ErrNotFound)
	}
	return nil
}
