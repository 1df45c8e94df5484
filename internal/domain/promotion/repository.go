package promotion

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// CouponRepository defines persistence operations for coupons.
// FindActiveByCode only matches coupons with IsActive set.
type CouponRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Coupon, error)
	FindActiveByCode(ctx context.Context, code string) (*Coupon, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Coupon, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, coupon *Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
}
