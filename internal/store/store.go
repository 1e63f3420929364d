// Package store is the persistence core: entity stores over a gorm
// connection, a transaction coordinator, optimistic-concurrency
// enforcement on versioned rows, implicit soft-delete filtering, the
// single-table payment resolver and a process-wide compiled query
// cache.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"ecommerce-service/internal/apperr"
)

// conn abstracts "root connection" vs "open transaction". handle
// returns a context-bound gorm handle or fails when the owning
// transaction is finished; finishWrite lets an open transaction react
// to a failed staged write (auto-rollback) before the error propagates.
type conn interface {
	handle(ctx context.Context) (*gorm.DB, error)
	finishWrite(err error) error
}

type dbConn struct {
	db *gorm.DB
}

func (c *dbConn) handle(ctx context.Context) (*gorm.DB, error) {
	return c.db.WithContext(ctx), nil
}

func (c *dbConn) finishWrite(err error) error { return err }

// Store bundles the entity stores sharing one connection.
type Store struct {
	Categories *CategoryStore
	Products   *ProductStore
	Customers  *CustomerStore
	Orders     *OrderStore
	Payments   *PaymentStore

	conn conn
	db   *gorm.DB
}

// New creates a store over the given database handle.
func New(db *gorm.DB) *Store {
	return newStore(db, &dbConn{db: db})
}

func newStore(db *gorm.DB, c conn) *Store {
	s := &Store{conn: c, db: db}
	s.Categories = &CategoryStore{conn: c}
	s.Products = &ProductStore{conn: c}
	s.Customers = &CustomerStore{conn: c}
	s.Orders = &OrderStore{conn: c}
	s.Payments = &PaymentStore{conn: c}
	return s
}

// translate folds gorm sentinel errors into the taxonomy. gorm's
// TranslateError option already normalizes engine-specific constraint
// errors, so this stays identical across postgres and sqlite.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", apperr.ErrUniqueViolation, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", apperr.ErrForeignKeyViolation, err)
	default:
		return err
	}
}
