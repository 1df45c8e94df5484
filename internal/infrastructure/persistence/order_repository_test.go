package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func seedOrder(t *testing.T, db *gorm.DB, repo *GormOrderRepository, accountID *uuid.UUID) *order.Order {
	t.Helper()
	ctx := context.Background()

	address, err := valueobject.NewAddressInfo("Rahim Uddin", "01712345678", "House 12, Road 5", "Dhaka", "1209")
	require.NoError(t, err)

	number, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)

	o, err := order.NewOrder(number, accountID, []order.LineInput{{
		ProductID: uuid.New(),
		Title:     "Classic T-Shirt",
		UnitPrice: decimal.NewFromInt(500),
		Quantity:  2,
	}}, address, order.ShippingInside, decimal.NewFromInt(80), "", 0, decimal.Zero)
	require.NoError(t, err)
	o.ClearDomainEvents()

	require.NoError(t, repo.Save(ctx, o))
	return o
}

func TestGormOrderRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := seedOrder(t, db, repo, nil)

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, found.OrderNumber)
	assert.Nil(t, found.AccountID)
	assert.Equal(t, "Dhaka", found.Address.City)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Classic T-Shirt", found.Items[0].Title)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(1080)))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_FindByOrderNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := seedOrder(t, db, repo, nil)

	found, err := repo.FindByOrderNumber(ctx, o.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, o.ID, found.ID)

	_, err = repo.FindByOrderNumber(ctx, "ORD-2026-99999")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_Save_DuplicateNumberReported(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	first := seedOrder(t, db, repo, nil)

	// Two commitments that drew the same number before either saved.
	address, err := valueobject.NewAddressInfo("Karim Mia", "01812345678", "Flat 3B, Mirpur 10", "Dhaka", "1216")
	require.NoError(t, err)
	second, err := order.NewOrder(first.OrderNumber, nil, []order.LineInput{{
		ProductID: uuid.New(),
		Title:     "Denim Jacket",
		UnitPrice: decimal.NewFromInt(2000),
		Quantity:  1,
	}}, address, order.ShippingInside, decimal.NewFromInt(80), "", 0, decimal.Zero)
	require.NoError(t, err)
	second.ClearDomainEvents()

	err = repo.Save(ctx, second)
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	// The loser retries with a fresh number and lands.
	fresh, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.OrderNumber, fresh)
	second.OrderNumber = fresh
	require.NoError(t, repo.Save(ctx, second))
}

func TestGormOrderRepository_GenerateOrderNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	year := time.Now().Year()

	first, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ORD-%d-00001", year), first)

	// The sequence only advances once an order is persisted.
	seedOrder(t, db, repo, nil)
	seedOrder(t, db, repo, nil)

	next, err := repo.GenerateOrderNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("ORD-%d-00003", year), next)
}

func TestGormOrderRepository_FindByAccount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	accountID := uuid.New()
	seedOrder(t, db, repo, &accountID)
	seedOrder(t, db, repo, &accountID)
	seedOrder(t, db, repo, nil)

	found, err := repo.FindByAccount(ctx, accountID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, found, 2)

	filter := shared.DefaultFilter()
	filter.Filters["account_id"] = accountID
	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGormOrderRepository_FindAll_StatusFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	confirmed := seedOrder(t, db, repo, nil)
	require.NoError(t, confirmed.Transition(order.OrderStatusConfirmed))
	confirmed.ClearDomainEvents()
	require.NoError(t, repo.Save(ctx, confirmed))

	seedOrder(t, db, repo, nil)

	filter := shared.DefaultFilter()
	filter.Filters["status"] = "confirmed"

	found, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, confirmed.OrderNumber, found[0].OrderNumber)
}

func TestGormOrderRepository_SaveWithLock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	o := seedOrder(t, db, repo, nil)

	stale, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)

	require.NoError(t, o.Transition(order.OrderStatusConfirmed))
	o.ClearDomainEvents()
	require.NoError(t, repo.SaveWithLock(ctx, o))

	found, err := repo.FindByID(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderStatusConfirmed, found.Status)

	// The stale copy lost the race and must not overwrite.
	require.NoError(t, stale.Transition(order.OrderStatusRejected))
	stale.ClearDomainEvents()
	assert.ErrorIs(t, repo.SaveWithLock(ctx, stale), shared.ErrConcurrencyConflict)
}
