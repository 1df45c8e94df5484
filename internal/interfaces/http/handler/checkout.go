package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	checkoutapp "github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shopping"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles order commitment
type CheckoutHandler struct {
	BaseHandler
	checkoutService *checkoutapp.Service
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *checkoutapp.Service) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// CommitOrderRequest represents a request to commit an order.
// Signed-in customers leave Lines empty; the account cart is used. Guests
// must send Lines carrying their browser-local cart.
type CommitOrderRequest struct {
	Lines        []SessionLineInput `json:"lines"`
	Name         string             `json:"name" binding:"required,max=100"`
	Phone        string             `json:"phone" binding:"required,max=20"`
	Address      string             `json:"address" binding:"required,max=500"`
	City         string             `json:"city" binding:"required,max=100"`
	Pincode      string             `json:"pincode" binding:"required,max=10"`
	ShippingType string             `json:"shipping_type" binding:"required"`
	CouponCode   string             `json:"coupon_code" binding:"max=50"`
}

// Commit godoc
// @Summary      Commit an order
// @Description  Validates the cart against live stock, decrements inventory
// @Description  all-or-nothing, snapshots the order and retires the cart.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Success      201 {object} dto.Response{data=checkoutapp.OrderResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /checkout [post]
func (h *CheckoutHandler) Commit(c *gin.Context) {
	var req CommitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	appReq := checkoutapp.CommitOrderRequest{
		Address: checkoutapp.AddressRequest{
			Name:    req.Name,
			Phone:   req.Phone,
			Address: req.Address,
			City:    req.City,
			Pincode: req.Pincode,
		},
		ShippingType: order.ShippingType(req.ShippingType),
		CouponCode:   req.CouponCode,
	}

	if accountID, ok := middleware.GetJWTAccountID(c); ok {
		appReq.AccountID = &accountID
	} else {
		for _, line := range req.Lines {
			productID, err := uuid.Parse(line.ProductID)
			if err != nil {
				h.BadRequest(c, "Invalid product ID format in cart lines")
				return
			}
			appReq.Lines = append(appReq.Lines, shopping.SessionLine{
				ProductID: productID,
				Title:     line.Title,
				UnitPrice: decimal.NewFromFloat(line.UnitPrice),
				SalePrice: decimal.NewFromFloat(line.SalePrice),
				Quantity:  line.Quantity,
				Size:      line.Size,
			})
		}
	}

	resp, err := h.checkoutService.CommitOrder(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}
