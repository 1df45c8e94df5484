package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shoppingapp "github.com/storefront/backend/internal/application/shopping"
)

// WishlistHandler handles account wishlist API endpoints
type WishlistHandler struct {
	BaseHandler
	wishlistService *shoppingapp.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService *shoppingapp.WishlistService) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
	}
}

// ToggleWishlistRequest represents a request to toggle a product on the wishlist
type ToggleWishlistRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

// ToggleResult reports the wishlist after a toggle and whether the
// product was added or removed
type ToggleResult struct {
	Added    bool                         `json:"added"`
	Wishlist shoppingapp.WishlistResponse `json:"wishlist"`
}

// Get godoc
// @Summary      Get account wishlist
// @Tags         wishlist
// @Produce      json
// @Success      200 {object} dto.Response{data=shoppingapp.WishlistResponse}
// @Security     BearerAuth
// @Router       /wishlist [get]
func (h *WishlistHandler) Get(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	wishlist, err := h.wishlistService.Get(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, wishlist)
}

// Toggle godoc
// @Summary      Toggle product on wishlist
// @Description  Adds the product when absent and removes it when present
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=ToggleResult}
// @Security     BearerAuth
// @Router       /wishlist/toggle [post]
func (h *WishlistHandler) Toggle(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ToggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	wishlist, added, err := h.wishlistService.Toggle(c.Request.Context(), accountID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ToggleResult{Added: added, Wishlist: *wishlist})
}

// Remove godoc
// @Summary      Remove product from wishlist
// @Tags         wishlist
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=shoppingapp.WishlistResponse}
// @Security     BearerAuth
// @Router       /wishlist/{product_id} [delete]
func (h *WishlistHandler) Remove(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	wishlist, err := h.wishlistService.Remove(c.Request.Context(), accountID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, wishlist)
}
