package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

func seedProduct(t *testing.T, db *gorm.DB, title string, price, salePrice float64, stock int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(title, "", decimal.NewFromFloat(price), decimal.NewFromFloat(salePrice), stock)
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product, err := catalog.NewProduct("Classic T-Shirt", "100% cotton", decimal.NewFromInt(500), decimal.Zero, 10)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Classic T-Shirt", found.Title)
	assert.True(t, found.Price.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, 10, found.TotalStock)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormProductRepository_FindByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	a := seedProduct(t, db, "Classic T-Shirt", 500, 0, 10)
	b := seedProduct(t, db, "Hoodie", 1500, 1200, 5)
	seedProduct(t, db, "Denim Jacket", 2000, 0, 3)

	found, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, found, 2)

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormProductRepository_FindAll_Search(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "Classic T-Shirt", 500, 0, 10)
	seedProduct(t, db, "Printed T-Shirt", 600, 0, 10)
	seedProduct(t, db, "Hoodie", 1500, 0, 5)

	filter := shared.DefaultFilter()
	filter.Search = "t-shirt"

	found, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormProductRepository_FindAll_Filters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "Classic T-Shirt", 500, 0, 10)
	seedProduct(t, db, "Hoodie", 1500, 1200, 0)
	seedProduct(t, db, "Denim Jacket", 2000, 1800, 3)

	t.Run("in stock", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["in_stock"] = true
		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("on sale", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["on_sale"] = true
		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Len(t, found, 2)
	})

	t.Run("on sale and in stock", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["on_sale"] = true
		filter.Filters["in_stock"] = true
		found, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Denim Jacket", found[0].Title)
	})
}

func TestGormProductRepository_FindAll_Pagination(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	seedProduct(t, db, "Classic T-Shirt", 500, 0, 10)
	seedProduct(t, db, "Hoodie", 1500, 0, 5)
	seedProduct(t, db, "Denim Jacket", 2000, 0, 3)

	filter := shared.DefaultFilter()
	filter.Page = 2
	filter.PageSize = 2
	filter.OrderBy = "title"
	filter.OrderDir = "asc"

	found, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Hoodie", found[0].Title)
}

func TestGormProductRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Classic T-Shirt", 500, 0, 10)

	require.NoError(t, repo.Delete(ctx, product.ID))
	_, err := repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, product.ID), shared.ErrNotFound)
}
