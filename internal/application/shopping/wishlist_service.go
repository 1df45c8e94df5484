package shopping

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shopping"
)

// WishlistService handles account wishlist operations
type WishlistService struct {
	wishlists shopping.WishlistRepository
	products  catalog.ProductRepository
}

// NewWishlistService creates a new WishlistService
func NewWishlistService(wishlists shopping.WishlistRepository, products catalog.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlists: wishlists,
		products:  products,
	}
}

// Get returns the account wishlist, creating it on first interaction
func (s *WishlistService) Get(ctx context.Context, accountID uuid.UUID) (*WishlistResponse, error) {
	wishlist, err := s.wishlists.FindOrCreateByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	response := ToWishlistResponse(wishlist)
	return &response, nil
}

// Toggle likes a product, or unlikes it when already liked. Returns the
// updated wishlist and whether the product is now liked.
func (s *WishlistService) Toggle(ctx context.Context, accountID, productID uuid.UUID) (*WishlistResponse, bool, error) {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil, false, err
	}

	wishlist, err := s.wishlists.FindOrCreateByAccount(ctx, accountID)
	if err != nil {
		return nil, false, err
	}

	liked := false
	if wishlist.Contains(productID) {
		if err := wishlist.Remove(productID); err != nil {
			return nil, false, err
		}
	} else {
		if _, err := wishlist.Add(productID); err != nil {
			return nil, false, err
		}
		liked = true
	}

	if err := s.wishlists.Save(ctx, wishlist); err != nil {
		return nil, false, err
	}

	response := ToWishlistResponse(wishlist)
	return &response, liked, nil
}

// Remove unlikes a product
func (s *WishlistService) Remove(ctx context.Context, accountID, productID uuid.UUID) (*WishlistResponse, error) {
	wishlist, err := s.wishlists.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := wishlist.Remove(productID); err != nil {
		return nil, err
	}

	if err := s.wishlists.Save(ctx, wishlist); err != nil {
		return nil, err
	}

	response := ToWishlistResponse(wishlist)
	return &response, nil
}
