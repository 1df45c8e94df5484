package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/promotion"
	"github.com/storefront/backend/internal/domain/shopping"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// Each test gets its own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Product{},
		&shopping.Cart{},
		&shopping.CartItem{},
		&shopping.Wishlist{},
		&shopping.WishlistItem{},
		&promotion.Coupon{},
		&order.Order{},
		&order.OrderItem{},
	)
	require.NoError(t, err)

	return db
}
