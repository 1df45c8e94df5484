package shopping

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines persistence operations for account carts.
// FindOrCreateByAccount implements the implicit creation rule: a cart exists
// from the first interaction onward.
type CartRepository interface {
	FindByAccount(ctx context.Context, accountID uuid.UUID) (*Cart, error)
	FindOrCreateByAccount(ctx context.Context, accountID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	SaveWithLock(ctx context.Context, cart *Cart) error
}

// WishlistRepository defines persistence operations for account wishlists
type WishlistRepository interface {
	FindByAccount(ctx context.Context, accountID uuid.UUID) (*Wishlist, error)
	FindOrCreateByAccount(ctx context.Context, accountID uuid.UUID) (*Wishlist, error)
	Save(ctx context.Context, wishlist *Wishlist) error
}
