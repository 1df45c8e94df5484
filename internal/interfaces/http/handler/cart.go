package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	shoppingapp "github.com/storefront/backend/internal/application/shopping"
	"github.com/storefront/backend/internal/domain/shopping"
)

// CartHandler handles account cart API endpoints
type CartHandler struct {
	BaseHandler
	cartService  *shoppingapp.CartService
	mergeService *shoppingapp.MergeService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *shoppingapp.CartService, mergeService *shoppingapp.MergeService) *CartHandler {
	return &CartHandler{
		cartService:  cartService,
		mergeService: mergeService,
	}
}

// AddCartItemRequest represents a request to add a product to the cart
type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Size      string `json:"size" binding:"max=20"`
}

// UpdateCartItemRequest represents a request to change a line's quantity.
// Quantity zero removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// SessionLineInput is one line of the anonymous cart snapshot sent at login
type SessionLineInput struct {
	ProductID string  `json:"product_id" binding:"required,uuid"`
	Title     string  `json:"title" binding:"required,max=200"`
	UnitPrice float64 `json:"unit_price" binding:"required,gt=0"`
	SalePrice float64 `json:"sale_price" binding:"gte=0"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	Size      string  `json:"size" binding:"max=20"`
}

// MergeRequest carries the anonymous cart and wishlist snapshots captured
// at login, together with the login event that triggered the merge
type MergeRequest struct {
	LoginEventID string             `json:"login_event_id" binding:"required,max=100"`
	CartLines    []SessionLineInput `json:"cart_lines"`
	WishlistIDs  []string           `json:"wishlist_ids" binding:"dive,uuid"`
}

// Get godoc
// @Summary      Get account cart
// @Tags         cart
// @Produce      json
// @Success      200 {object} dto.Response{data=shoppingapp.CartResponse}
// @Security     BearerAuth
// @Router       /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// AddItem godoc
// @Summary      Add product to cart
// @Description  Adds a product to the account cart, folding quantities for an existing line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=shoppingapp.CartResponse}
// @Security     BearerAuth
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), accountID, shoppingapp.AddItemRequest{
		ProductID: productID,
		Quantity:  req.Quantity,
		Size:      req.Size,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// UpdateItem godoc
// @Summary      Update cart line quantity
// @Description  Sets the quantity of a cart line; zero removes the line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=shoppingapp.CartResponse}
// @Security     BearerAuth
// @Router       /cart/items/{product_id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
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

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	cart, err := h.cartService.UpdateQuantity(c.Request.Context(), accountID, productID, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem godoc
// @Summary      Remove product from cart
// @Tags         cart
// @Produce      json
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      200 {object} dto.Response{data=shoppingapp.CartResponse}
// @Security     BearerAuth
// @Router       /cart/items/{product_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
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

	cart, err := h.cartService.RemoveItem(c.Request.Context(), accountID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, cart)
}

// Clear godoc
// @Summary      Empty the account cart
// @Tags         cart
// @Produce      json
// @Success      204
// @Security     BearerAuth
// @Router       /cart [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), accountID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Merge godoc
// @Summary      Merge anonymous cart and wishlist at login
// @Description  Folds the browser-local cart and wishlist into the account's
// @Description  server-side copies. Safe to retry with the same login event;
// @Description  replays are detected and nothing is folded twice.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=shoppingapp.MergeResult}
// @Security     BearerAuth
// @Router       /cart/merge [post]
func (h *CartHandler) Merge(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req MergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	anonCart := shopping.SessionCart{Lines: make([]shopping.SessionLine, 0, len(req.CartLines))}
	for _, line := range req.CartLines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format in cart snapshot")
			return
		}
		anonCart.Lines = append(anonCart.Lines, shopping.SessionLine{
			ProductID: productID,
			Title:     line.Title,
			UnitPrice: decimal.NewFromFloat(line.UnitPrice),
			SalePrice: decimal.NewFromFloat(line.SalePrice),
			Quantity:  line.Quantity,
			Size:      line.Size,
		})
	}

	anonWishlist := shopping.SessionWishlist{ProductIDs: make([]uuid.UUID, 0, len(req.WishlistIDs))}
	for _, raw := range req.WishlistIDs {
		productID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid product ID format in wishlist snapshot")
			return
		}
		anonWishlist.ProductIDs = append(anonWishlist.ProductIDs, productID)
	}

	result, err := h.mergeService.MergeOnLogin(c.Request.Context(), accountID, req.LoginEventID, anonCart, anonWishlist)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
