package shopping

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shopping"
)

// AddItemRequest asks for a product to be added to the account cart
type AddItemRequest struct {
	ProductID uuid.UUID
	Quantity  int
	Size      string
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ProductID      uuid.UUID `json:"product_id"`
	Title          string    `json:"title"`
	UnitPrice      float64   `json:"unit_price"`
	SalePrice      float64   `json:"sale_price"`
	EffectivePrice float64   `json:"effective_price"`
	Quantity       int       `json:"quantity"`
	Size           string    `json:"size,omitempty"`
	Amount         float64   `json:"amount"`
}

// CartResponse represents the account cart in API responses
type CartResponse struct {
	AccountID uuid.UUID          `json:"account_id"`
	Items     []CartItemResponse `json:"items"`
	Subtotal  float64            `json:"subtotal"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ToCartResponse converts a cart aggregate to its response form
func ToCartResponse(c *shopping.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items))
	for idx := range c.Items {
		item := &c.Items[idx]
		items = append(items, CartItemResponse{
			ProductID:      item.ProductID,
			Title:          item.Title,
			UnitPrice:      item.UnitPrice.InexactFloat64(),
			SalePrice:      item.SalePrice.InexactFloat64(),
			EffectivePrice: item.EffectivePrice().InexactFloat64(),
			Quantity:       item.Quantity,
			Size:           item.Size,
			Amount:         item.Amount().InexactFloat64(),
		})
	}
	return CartResponse{
		AccountID: c.AccountID,
		Items:     items,
		Subtotal:  c.Subtotal().InexactFloat64(),
		UpdatedAt: c.UpdatedAt,
	}
}

// WishlistResponse represents the account wishlist in API responses
type WishlistResponse struct {
	AccountID  uuid.UUID   `json:"account_id"`
	ProductIDs []uuid.UUID `json:"product_ids"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// ToWishlistResponse converts a wishlist aggregate to its response form
func ToWishlistResponse(w *shopping.Wishlist) WishlistResponse {
	return WishlistResponse{
		AccountID:  w.AccountID,
		ProductIDs: w.ProductIDs(),
		UpdatedAt:  w.UpdatedAt,
	}
}

// MergeFailure reports one anonymous item that could not be merged.
// Sibling items are unaffected.
type MergeFailure struct {
	ProductID uuid.UUID `json:"product_id"`
	Reason    string    `json:"reason"`
}

// MergeResult summarizes a login merge. AlreadyMerged is set when the same
// login event was processed before; nothing was folded a second time.
type MergeResult struct {
	AlreadyMerged      bool             `json:"already_merged"`
	MergedLines        int              `json:"merged_lines"`
	AddedWishlistItems int              `json:"added_wishlist_items"`
	Failures           []MergeFailure   `json:"failures,omitempty"`
	Cart               CartResponse     `json:"cart"`
	Wishlist           WishlistResponse `json:"wishlist"`
	// ClearAnonymous tells the client to drop its browser-local stores
	ClearAnonymous bool `json:"clear_anonymous"`
}
