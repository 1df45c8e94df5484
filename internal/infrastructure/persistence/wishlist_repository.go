package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shopping"
)

// GormWishlistRepository implements shopping.WishlistRepository using GORM
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// FindByAccount finds the account's wishlist with its items
func (r *GormWishlistRepository) FindByAccount(ctx context.Context, accountID uuid.UUID) (*shopping.Wishlist, error) {
	var wishlist shopping.Wishlist
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&wishlist, "account_id = ?", accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &wishlist, nil
}

// FindOrCreateByAccount returns the account's wishlist, creating an empty
// one on first touch
func (r *GormWishlistRepository) FindOrCreateByAccount(ctx context.Context, accountID uuid.UUID) (*shopping.Wishlist, error) {
	wishlist, err := r.FindByAccount(ctx, accountID)
	if err == nil {
		return wishlist, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	fresh, err := shopping.NewWishlist(accountID)
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

// Save persists the wishlist and reconciles its items
func (r *GormWishlistRepository) Save(ctx context.Context, wishlist *shopping.Wishlist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(wishlist).Error; err != nil {
			return err
		}

		if len(wishlist.Items) == 0 {
			return tx.Where("wishlist_id = ?", wishlist.ID).Delete(&shopping.WishlistItem{}).Error
		}

		currentItemIDs := make([]uuid.UUID, len(wishlist.Items))
		for i := range wishlist.Items {
			currentItemIDs[i] = wishlist.Items[i].ID
		}
		if err := tx.Where("wishlist_id = ? AND id NOT IN ?", wishlist.ID, currentItemIDs).
			Delete(&shopping.WishlistItem{}).Error; err != nil {
			return err
		}

		for i := range wishlist.Items {
			wishlist.Items[i].WishlistID = wishlist.ID
			if err := tx.Save(&wishlist.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
