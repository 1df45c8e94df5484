package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shopping"
)

func testLine(productID uuid.UUID, quantity int) shopping.SessionLine {
	return shopping.SessionLine{
		ProductID: productID,
		Title:     "Classic T-Shirt",
		UnitPrice: decimal.NewFromInt(500),
		SalePrice: decimal.Zero,
		Quantity:  quantity,
		Size:      "M",
	}
}

func TestGormCartRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()
	accountID := uuid.New()
	productID := uuid.New()

	cart, err := shopping.NewCart(accountID)
	require.NoError(t, err)
	require.NoError(t, cart.MergeLine(testLine(productID, 2)))
	require.NoError(t, repo.Save(ctx, cart))

	found, err := repo.FindByAccount(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, found.ID)
	require.Len(t, found.Items, 1)
	assert.Equal(t, productID, found.Items[0].ProductID)
	assert.Equal(t, 2, found.Items[0].Quantity)
	assert.Equal(t, "M", found.Items[0].Size)
	assert.True(t, found.Items[0].UnitPrice.Equal(decimal.NewFromInt(500)))
}

func TestGormCartRepository_FindByAccount_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)

	_, err := repo.FindByAccount(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormCartRepository_FindOrCreateByAccount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()
	accountID := uuid.New()

	created, err := repo.FindOrCreateByAccount(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, accountID, created.AccountID)
	assert.Empty(t, created.Items)

	// Second call returns the same row, not a new one.
	again, err := repo.FindOrCreateByAccount(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&shopping.Cart{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormCartRepository_Save_ReconcilesRemovedItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()
	accountID := uuid.New()
	keep := uuid.New()
	drop := uuid.New()

	cart, err := shopping.NewCart(accountID)
	require.NoError(t, err)
	require.NoError(t, cart.MergeLine(testLine(keep, 1)))
	require.NoError(t, cart.MergeLine(testLine(drop, 2)))
	require.NoError(t, repo.Save(ctx, cart))

	require.NoError(t, cart.RemoveItem(drop))
	require.NoError(t, repo.Save(ctx, cart))

	found, err := repo.FindByAccount(ctx, accountID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, keep, found.Items[0].ProductID)

	var itemCount int64
	require.NoError(t, db.Model(&shopping.CartItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), itemCount)
}

func TestGormCartRepository_Save_EmptyCartDeletesItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()
	accountID := uuid.New()

	cart, err := shopping.NewCart(accountID)
	require.NoError(t, err)
	require.NoError(t, cart.MergeLine(testLine(uuid.New(), 1)))
	require.NoError(t, repo.Save(ctx, cart))

	cart.Clear()
	require.NoError(t, repo.Save(ctx, cart))

	found, err := repo.FindByAccount(ctx, accountID)
	require.NoError(t, err)
	assert.Empty(t, found.Items)
}

func TestGormCartRepository_SaveWithLock_Conflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()
	accountID := uuid.New()

	cart, err := shopping.NewCart(accountID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, cart))

	// A stale copy holds an outdated version.
	stale, err := repo.FindByAccount(ctx, accountID)
	require.NoError(t, err)

	require.NoError(t, cart.MergeLine(testLine(uuid.New(), 1)))
	require.NoError(t, repo.SaveWithLock(ctx, cart))

	staleVersion := stale.Version
	err = repo.SaveWithLock(ctx, stale)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	assert.Equal(t, staleVersion, stale.Version)
}
