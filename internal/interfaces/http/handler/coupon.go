package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	promotionapp "github.com/storefront/backend/internal/application/promotion"
	"github.com/storefront/backend/internal/domain/shared"
)

// CouponHandler handles coupon API endpoints
type CouponHandler struct {
	BaseHandler
	couponService *promotionapp.CouponService
}

// NewCouponHandler creates a new CouponHandler
func NewCouponHandler(couponService *promotionapp.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// Validate godoc
// @Summary      Validate a coupon code
// @Description  Checks a code is active and unexpired before checkout
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Success      200 {object} dto.Response{data=promotionapp.CouponResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	var req promotionapp.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	coupon, err := h.couponService.Validate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, coupon)
}

// List godoc
// @Summary      List coupons
// @Description  Operator only.
// @Tags         coupons
// @Produce      json
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Code search"
// @Success      200 {object} dto.Response{data=[]promotionapp.CouponResponse}
// @Security     BearerAuth
// @Router       /admin/coupons [get]
func (h *CouponHandler) List(c *gin.Context) {
	filter := shared.DefaultFilter()
	var query struct {
		Page     int    `form:"page"`
		PageSize int    `form:"page_size"`
		Search   string `form:"search"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BindingError(c, err)
		return
	}
	if query.Page > 0 {
		filter.Page = query.Page
	}
	if query.PageSize > 0 && query.PageSize <= 100 {
		filter.PageSize = query.PageSize
	}
	filter.Search = query.Search

	page, err := h.couponService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID godoc
// @Summary      Get coupon by ID
// @Description  Operator only.
// @Tags         coupons
// @Produce      json
// @Param        id path string true "Coupon ID" format(uuid)
// @Success      200 {object} dto.Response{data=promotionapp.CouponResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/coupons/{id} [get]
func (h *CouponHandler) GetByID(c *gin.Context) {
	couponID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID format")
		return
	}

	coupon, err := h.couponService.Get(c.Request.Context(), couponID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, coupon)
}

// Create godoc
// @Summary      Create coupon
// @Description  Operator only.
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Success      201 {object} dto.Response{data=promotionapp.CouponResponse}
// @Security     BearerAuth
// @Router       /admin/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	var req promotionapp.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	coupon, err := h.couponService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, coupon)
}

// Update godoc
// @Summary      Update coupon
// @Description  Operator only.
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        id path string true "Coupon ID" format(uuid)
// @Success      200 {object} dto.Response{data=promotionapp.CouponResponse}
// @Security     BearerAuth
// @Router       /admin/coupons/{id} [put]
func (h *CouponHandler) Update(c *gin.Context) {
	couponID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID format")
		return
	}

	var req promotionapp.UpdateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	coupon, err := h.couponService.Update(c.Request.Context(), couponID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, coupon)
}

// Delete godoc
// @Summary      Delete coupon
// @Description  Operator only.
// @Tags         coupons
// @Param        id path string true "Coupon ID" format(uuid)
// @Success      204
// @Security     BearerAuth
// @Router       /admin/coupons/{id} [delete]
func (h *CouponHandler) Delete(c *gin.Context) {
	couponID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid coupon ID format")
		return
	}

	if err := h.couponService.Delete(c.Request.Context(), couponID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
