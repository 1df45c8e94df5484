package promotion

import (
	"context"
	"errors"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
)

// Validator decides whether a coupon code is currently redeemable.
// Validation is read-only; redeeming a coupon never mutates it.
type Validator struct {
	coupons CouponRepository
	now     func() time.Time
}

// NewValidator creates a coupon validator
func NewValidator(coupons CouponRepository) *Validator {
	return &Validator{
		coupons: coupons,
		now:     time.Now,
	}
}

// WithClock overrides the time source (tests)
func (v *Validator) WithClock(now func() time.Time) *Validator {
	v.now = now
	return v
}

// Validate looks up an active coupon by exact code and checks its expiry.
// An unknown or inactive code yields ErrInvalidCoupon; a lapsed expiry date
// yields ErrExpiredCoupon.
func (v *Validator) Validate(ctx context.Context, code string) (*Coupon, error) {
	if code == "" {
		return nil, ErrInvalidCoupon
	}

	coupon, err := v.coupons.FindActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCoupon
		}
		return nil, err
	}

	if coupon.IsExpired(v.now()) {
		return nil, ErrExpiredCoupon
	}

	return coupon, nil
}
