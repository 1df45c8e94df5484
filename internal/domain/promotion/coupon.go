package promotion

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Coupon errors surfaced distinctly so the caller can explain why a code
// failed (bad code vs. lapsed code)
var (
	ErrInvalidCoupon = shared.NewDomainError("INVALID_COUPON", "Coupon code is not valid")
	ErrExpiredCoupon = shared.NewDomainError("EXPIRED_COUPON", "Coupon code has expired")
)

// Coupon is a percentage discount code. The core only reads coupons;
// creation and edits are operator actions.
type Coupon struct {
	shared.BaseAggregateRoot
	Code               string `gorm:"uniqueIndex;not null"`
	DiscountPercentage int
	IsActive           bool
	ExpiryDate         *time.Time // nil means no expiry
}

// TableName returns the table name for GORM
func (Coupon) TableName() string {
	return "coupons"
}

// NewCoupon creates a new coupon
func NewCoupon(code string, discountPercentage int, expiryDate *time.Time) (*Coupon, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Coupon code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Coupon code cannot exceed 50 characters")
	}
	if discountPercentage < 1 || discountPercentage > 100 {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount percentage must be between 1 and 100")
	}

	return &Coupon{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		Code:               code,
		DiscountPercentage: discountPercentage,
		IsActive:           true,
		ExpiryDate:         expiryDate,
	}, nil
}

// Update replaces the discount and expiry (operator edit)
func (c *Coupon) Update(discountPercentage int, expiryDate *time.Time) error {
	if discountPercentage < 1 || discountPercentage > 100 {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount percentage must be between 1 and 100")
	}

	c.DiscountPercentage = discountPercentage
	c.ExpiryDate = expiryDate
	c.UpdatedAt = time.Now()
	return nil
}

// Activate makes the coupon redeemable
func (c *Coupon) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
}

// Deactivate withdraws the coupon without deleting it
func (c *Coupon) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// IsExpired reports whether the expiry date, if set, is strictly before now
func (c *Coupon) IsExpired(now time.Time) bool {
	return c.ExpiryDate != nil && c.ExpiryDate.Before(now)
}

// DiscountOn computes the discount amount for a subtotal, rounded to two
// decimal places. Shipping is never part of the discount base.
func (c *Coupon) DiscountOn(subtotal decimal.Decimal) decimal.Decimal {
	pct := decimal.NewFromInt(int64(c.DiscountPercentage))
	return subtotal.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
}
