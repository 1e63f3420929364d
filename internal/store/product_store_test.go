package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-service/internal/apperr"
	"ecommerce-service/internal/model"
)

func TestProductCreate_AssignsVersion(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p := &model.Product{Name: "Headphones", Price: decimal.RequireFromString("149.99"), CategoryID: 1}
	require.NoError(t, s.Products.Create(ctx, p))
	assert.NotZero(t, p.ID)
	assert.NotEmpty(t, p.Version)
}

func TestProductCreate_DuplicateName(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p := &model.Product{Name: "Smartphone", Price: decimal.RequireFromString("1.00"), CategoryID: 1}
	err := s.Products.Create(ctx, p)
	require.ErrorIs(t, err, apperr.ErrUniqueViolation)
}

func TestProductCreate_NameStaysUniqueAgainstSoftDeletedRows(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	shirt, err := s.Products.Get(ctx, 4)
	require.NoError(t, err)
	_, err = s.Products.SoftDelete(ctx, 4, shirt.Version)
	require.NoError(t, err)

	// The deleted row still occupies the uniqueness domain.
	p := &model.Product{Name: "T-Shirt", Price: decimal.RequireFromString("9.99"), CategoryID: 3}
	err = s.Products.Create(ctx, p)
	require.ErrorIs(t, err, apperr.ErrUniqueViolation)
}

func TestProductCreate_Validation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		product model.Product
	}{
		{"empty name", model.Product{CategoryID: 1}},
		{"name too long", model.Product{Name: string(make([]byte, 201)), CategoryID: 1}},
		{"negative price", model.Product{Name: "Negative", Price: decimal.RequireFromString("-1"), CategoryID: 1}},
		{"missing category", model.Product{Name: "Orphan"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Products.Create(ctx, &tt.product)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestProductCreate_MissingCategoryReference(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p := &model.Product{Name: "Ghost", Price: decimal.RequireFromString("5.00"), CategoryID: 99}
	err := s.Products.Create(ctx, p)
	require.ErrorIs(t, err, apperr.ErrForeignKeyViolation)
}

func TestProductSoftDelete_FilteredFromDefaultReads(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	before, err := s.Products.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 4, before)

	shirt, err := s.Products.Get(ctx, 4)
	require.NoError(t, err)
	newVersion, err := s.Products.SoftDelete(ctx, 4, shirt.Version)
	require.NoError(t, err)
	assert.NotEqual(t, shirt.Version, newVersion)

	after, err := s.Products.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, after)

	// Default lookup no longer sees the row.
	_, err = s.Products.Get(ctx, 4)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// The override still does, and other rows are unaffected.
	deleted, err := s.Products.Get(ctx, 4, IncludeDeleted())
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	all, err := s.Products.Count(ctx, IncludeDeleted())
	require.NoError(t, err)
	assert.EqualValues(t, 4, all)

	_, err = s.Products.Get(ctx, 1)
	assert.NoError(t, err)
}

func TestProductSoftDelete_IsAVersionedWrite(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	shirt, err := s.Products.Get(ctx, 4)
	require.NoError(t, err)

	_, err = s.Products.SoftDelete(ctx, 4, "stale-token")
	require.ErrorIs(t, err, apperr.ErrConcurrencyConflict)

	_, err = s.Products.SoftDelete(ctx, 4, shirt.Version)
	require.NoError(t, err)
}

func TestProductUpdate_ConcurrencyConflict(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// Two sessions read the same row and hold the same token.
	sessionA, err := s.Products.Get(ctx, 1)
	require.NoError(t, err)
	sessionB, err := s.Products.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, sessionA.Version, sessionB.Version)

	// First writer wins and advances the token.
	sessionA.Price = decimal.RequireFromString("999.99")
	require.NoError(t, s.Products.Update(ctx, sessionA))
	assert.NotEqual(t, sessionB.Version, sessionA.Version)

	// The second writer carries the stale token and must lose.
	sessionB.Price = decimal.RequireFromString("1099.99")
	err = s.Products.Update(ctx, sessionB)
	require.ErrorIs(t, err, apperr.ErrConcurrencyConflict)

	// No silent merge: the winner's write stands.
	current, err := s.Products.Get(ctx, 1)
	require.NoError(t, err)
	assert.True(t, current.Price.Equal(decimal.RequireFromString("999.99")))

	// Re-read and re-apply succeeds.
	current.Price = decimal.RequireFromString("1099.99")
	require.NoError(t, s.Products.Update(ctx, current))
}

func TestProductUpdate_MissingRowIsNotFound(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	p := &model.Product{ID: 99, Name: "Nobody", Price: decimal.RequireFromString("1.00"), CategoryID: 1, Version: "whatever"}
	err := s.Products.Update(ctx, p)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestProductListByCategory(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	electronics, err := s.Products.ListByCategory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, electronics, 2)
	assert.Equal(t, "Smartphone", electronics[0].Name)
	assert.Equal(t, "Laptop", electronics[1].Name)
}
