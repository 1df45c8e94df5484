package shopping

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// WishlistItem is a liked product reference
type WishlistItem struct {
	ID         uuid.UUID
	WishlistID uuid.UUID `gorm:"type:uuid;index"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
}

// TableName returns the table name for GORM
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

// Wishlist is the durable per-account set of liked products
type Wishlist struct {
	shared.BaseAggregateRoot
	AccountID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Items     []WishlistItem `gorm:"foreignKey:WishlistID"`
}

// TableName returns the table name for GORM
func (Wishlist) TableName() string {
	return "wishlists"
}

// NewWishlist creates an empty wishlist for an account
func NewWishlist(accountID uuid.UUID) (*Wishlist, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	return &Wishlist{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountID:         accountID,
		Items:             make([]WishlistItem, 0),
	}, nil
}

// Add likes a product. Returns false when the product is already present,
// so a merge never duplicates an entry.
func (w *Wishlist) Add(productID uuid.UUID) (bool, error) {
	if productID == uuid.Nil {
		return false, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if w.Contains(productID) {
		return false, nil
	}

	now := time.Now()
	w.Items = append(w.Items, WishlistItem{
		ID:         uuid.New(),
		WishlistID: w.ID,
		ProductID:  productID,
		CreatedAt:  now,
	})
	w.UpdatedAt = now
	return true, nil
}

// Remove unlikes a product
func (w *Wishlist) Remove(productID uuid.UUID) error {
	for idx, item := range w.Items {
		if item.ProductID == productID {
			w.Items = append(w.Items[:idx], w.Items[idx+1:]...)
			w.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Wishlist item not found")
}

// Contains reports whether a product is liked
func (w *Wishlist) Contains(productID uuid.UUID) bool {
	for idx := range w.Items {
		if w.Items[idx].ProductID == productID {
			return true
		}
	}
	return false
}

// ProductIDs returns the liked product ids in insertion order
func (w *Wishlist) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(w.Items))
	for idx := range w.Items {
		ids[idx] = w.Items[idx].ProductID
	}
	return ids
}

// ItemCount returns the number of liked products
func (w *Wishlist) ItemCount() int {
	return len(w.Items)
}
