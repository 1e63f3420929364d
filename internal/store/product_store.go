package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ecommerce-service/internal/apperr"
	"ecommerce-service/internal/model"
)

// ProductStore persists products. Reads implicitly exclude soft-deleted
// rows unless IncludeDeleted is requested; every write is conditional
// on the version token the caller last read.
type ProductStore struct {
	conn conn
}

// ReadOption adjusts product reads.
type ReadOption func(*readOptions)

type readOptions struct {
	includeDeleted bool
}

// IncludeDeleted bypasses the soft-delete filter for one read.
func IncludeDeleted() ReadOption {
	return func(o *readOptions) { o.includeDeleted = true }
}

func applyReadOptions(db *gorm.DB, opts []ReadOption) *gorm.DB {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !o.includeDeleted {
		db = db.Where("is_deleted = ?", false)
	}
	return db
}

// Create inserts a product and assigns its first version token.
func (s *ProductStore) Create(ctx context.Context, product *model.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	product.Version = uuid.NewString()
	return s.conn.finishWrite(translate(db.Create(product).Error))
}

// Get fetches a product by id. Soft-deleted rows are invisible unless
// IncludeDeleted is passed.
func (s *ProductStore) Get(ctx context.Context, id uint, opts ...ReadOption) (*model.Product, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var product model.Product
	if err := applyReadOptions(db, opts).First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

// List returns products, optionally filtered by category.
func (s *ProductStore) List(ctx context.Context, opts ...ReadOption) ([]model.Product, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var products []model.Product
	if err := applyReadOptions(db, opts).Order("id").Find(&products).Error; err != nil {
		return nil, translate(err)
	}
	return products, nil
}

// ListByCategory returns the non-deleted products of one category.
func (s *ProductStore) ListByCategory(ctx context.Context, categoryID uint, opts ...ReadOption) ([]model.Product, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return nil, err
	}
	var products []model.Product
	err = applyReadOptions(db, opts).Where("category_id = ?", categoryID).Order("id").Find(&products).Error
	if err != nil {
		return nil, translate(err)
	}
	return products, nil
}

// Count counts products subject to the soft-delete filter.
func (s *ProductStore) Count(ctx context.Context, opts ...ReadOption) (int64, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := applyReadOptions(db.Model(&model.Product{}), opts).Count(&count).Error; err != nil {
		return 0, translate(err)
	}
	return count, nil
}

// Update applies the product's current field values conditionally on
// the version token carried in product.Version. If another writer
// committed since that token was read the update matches zero rows and
// the call fails with ErrConcurrencyConflict; the caller must re-read
// and re-apply. On success the token is advanced in place.
func (s *ProductStore) Update(ctx context.Context, product *model.Product) error {
	if err := product.Validate(); err != nil {
		return err
	}
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}

	newVersion := uuid.NewString()
	res := db.Model(&model.Product{}).
		Where("id = ? AND version = ?", product.ID, product.Version).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"price":       product.Price,
			"category_id": product.CategoryID,
			"is_deleted":  product.IsDeleted,
			"version":     newVersion,
		})
	if res.Error != nil {
		return s.conn.finishWrite(translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return s.conn.finishWrite(s.versionMissErr(ctx, product.ID))
	}
	product.Version = newVersion
	return nil
}

// SoftDelete marks a product logically deleted. It is an ordinary
// versioned write: a stale token is rejected the same way as any other
// update, and the row stays in the uniqueness domain and referenceable
// by order items.
func (s *ProductStore) SoftDelete(ctx context.Context, id uint, version string) (string, error) {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return "", err
	}

	newVersion := uuid.NewString()
	res := db.Model(&model.Product{}).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"version":    newVersion,
		})
	if res.Error != nil {
		return "", s.conn.finishWrite(translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return "", s.conn.finishWrite(s.versionMissErr(ctx, id))
	}
	return newVersion, nil
}

// versionMissErr distinguishes "row gone" from "token stale" after a
// conditional update matched nothing.
func (s *ProductStore) versionMissErr(ctx context.Context, id uint) error {
	db, err := s.conn.handle(ctx)
	if err != nil {
		return err
	}
	var count int64
	if err := db.Model(&model.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return translate(err)
	}
	if count == 0 {
		return apperr.ErrNotFound
	}
	return apperr.ErrConcurrencyConflict
}
