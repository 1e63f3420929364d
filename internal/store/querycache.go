package store

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"ecommerce-service/internal/model"
)

// queryShape identifies a fixed read shape: the entity plus the related
// data it pulls in. Parameter values are not part of the shape.
type queryShape struct {
	entity  string
	include string
}

// compiledPlan executes a precompiled read shape for one lookup key.
type compiledPlan func(db *gorm.DB, id uint, dest interface{}) error

// queryCache maps shapes to reusable plans. It is process-wide and
// never evicts: the shape set is fixed at compile sites, so population
// is lazy and idempotent (LoadOrStore makes concurrent compilation of
// the same shape safe).
type queryCache struct {
	plans sync.Map
}

// queries is the single process-wide cache instance.
var queries queryCache

func (c *queryCache) plan(shape queryShape, compile func() compiledPlan) compiledPlan {
	if v, ok := c.plans.Load(shape); ok {
		return v.(compiledPlan)
	}
	v, _ := c.plans.LoadOrStore(shape, compile())
	return v.(compiledPlan)
}

// categoryWithProducts executes the cached category-with-products
// shape. The preload carries the soft-delete predicate so cached and
// uncached reads agree.
func (c *queryCache) categoryWithProducts(ctx context.Context, db *gorm.DB, id uint) (*model.Category, error) {
	p := c.plan(queryShape{entity: "Category", include: "Products"}, func() compiledPlan {
		return func(db *gorm.DB, id uint, dest interface{}) error {
			return db.Session(&gorm.Session{PrepareStmt: true}).
				Preload("Products", "is_deleted = ?", false).
				First(dest, id).Error
		}
	})

	var category model.Category
	if err := p(db.WithContext(ctx), id, &category); err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// customerWithOrders executes the cached customer-with-orders shape.
func (c *queryCache) customerWithOrders(ctx context.Context, db *gorm.DB, id uint) (*model.Customer, error) {
	p := c.plan(queryShape{entity: "Customer", include: "Orders"}, func() compiledPlan {
		return func(db *gorm.DB, id uint, dest interface{}) error {
			return db.Session(&gorm.Session{PrepareStmt: true}).
				Preload("Orders").
				First(dest, id).Error
		}
	})

	var customer model.Customer
	if err := p(db.WithContext(ctx), id, &customer); err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}
