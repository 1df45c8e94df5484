package promotion

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/promotion"
)

// CreateCouponRequest creates a new percentage discount code
type CreateCouponRequest struct {
	Code               string     `json:"code" binding:"required,max=50"`
	DiscountPercentage int        `json:"discount_percentage" binding:"required,min=1,max=100"`
	ExpiryDate         *time.Time `json:"expiry_date,omitempty"`
}

// UpdateCouponRequest edits an existing coupon
type UpdateCouponRequest struct {
	DiscountPercentage int        `json:"discount_percentage" binding:"required,min=1,max=100"`
	ExpiryDate         *time.Time `json:"expiry_date,omitempty"`
	IsActive           *bool      `json:"is_active,omitempty"`
}

// ValidateCouponRequest checks a code on behalf of a storefront client
type ValidateCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// CouponResponse represents a coupon in API responses
type CouponResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Code               string     `json:"code"`
	DiscountPercentage int        `json:"discount_percentage"`
	IsActive           bool       `json:"is_active"`
	ExpiryDate         *time.Time `json:"expiry_date,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ToCouponResponse converts a coupon aggregate to its response form
func ToCouponResponse(c *promotion.Coupon) CouponResponse {
	return CouponResponse{
		ID:                 c.ID,
		Code:               c.Code,
		DiscountPercentage: c.DiscountPercentage,
		IsActive:           c.IsActive,
		ExpiryDate:         c.ExpiryDate,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
