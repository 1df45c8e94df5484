package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shopping"
)

// GormCartRepository implements shopping.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByAccount finds the account's cart with its items
func (r *GormCartRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) (*shopping.Cart, error) {
	var cart shopping.Cart
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&cart, "account_id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// FindOrCreateByAccount returns the account's cart, creating an empty one on
// first touch. A concurrent first touch loses the unique-index race and
// falls back to reading the winner's row.
func (r *GormCartRepository) FindOrCreateByAccount(ctx context.Context, accountID uuid.UUID) (*shopping.Cart, error) {
	cart, err := r.FindByAccount(ctx, accountID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fresh, err := shopping.NewCart(accountID)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(fresh).Error; err != nil {
		if existing, findErr := r.FindByAccount(ctx, accountID); findErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return fresh, nil
}

// Save persists the cart and reconciles its items: lines removed from the
// aggregate are deleted, the rest are upserted
func (r *GormCartRepository) Save(ctx context.Context, cart *shopping.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(cart).Error; err != nil {
			return err
		}
		return saveCartItems(tx, cart)
	})
}

// SaveWithLock persists the cart with an optimistic version check
func (r *GormCartRepository) SaveWithLock(ctx context.Context, cart *shopping.Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := cart.Version
		cart.Version++
		cart.UpdatedAt = time.Now()

		result := tx.Model(&shopping.Cart{}).
			Where("id = ? AND version = ?", cart.ID, currentVersion).
			Updates(map[string]interface{}{
				"version":    cart.Version,
				"updated_at": cart.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			cart.Version = currentVersion
			return shared.ErrConcurrencyConflict
		}

		return saveCartItems(tx, cart)
	})
}

func saveCartItems(tx *gorm.DB, cart *shopping.Cart) error {
	if len(cart.Items) == 0 {
		return tx.Where("cart_id = ?", cart.ID).Delete(&shopping.CartItem{}).Error
	}

	currentItemIDs := make([]uuid.UUID, len(cart.Items))
	for i := range cart.Items {
		currentItemIDs[i] = cart.Items[i].ID
	}
	if err := tx.Where("cart_id = ? AND id NOT IN ?", cart.ID, currentItemIDs).
		Delete(&shopping.CartItem{}).Error; err != nil {
		return err
	}

	for i := range cart.Items {
		cart.Items[i].CartID = cart.ID
		if err := tx.Save(&cart.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
