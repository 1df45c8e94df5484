package promotion

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared"
)

type fakeCouponRepo struct {
	coupons map[string]*Coupon
}

func newFakeCouponRepo(coupons ...*Coupon) *fakeCouponRepo {
	repo := &fakeCouponRepo{coupons: make(map[string]*Coupon)}
	for _, c := range coupons {
		repo.coupons[strings.ToUpper(c.Code)] = c
	}
	return repo
}

func (r *fakeCouponRepo) FindByID(_ context.Context, id uuid.UUID) (*Coupon, error) {
	for _, c := range r.coupons {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCouponRepo) FindActiveByCode(_ context.Context, code string) (*Coupon, error) {
	c, ok := r.coupons[strings.ToUpper(strings.TrimSpace(code))]
	if !ok || !c.IsActive {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (r *fakeCouponRepo) FindAll(_ context.Context, _ shared.Filter) ([]Coupon, error) {
	out := make([]Coupon, 0, len(r.coupons))
	for _, c := range r.coupons {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCouponRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.coupons)), nil
}

func (r *fakeCouponRepo) Save(_ context.Context, coupon *Coupon) error {
	r.coupons[strings.ToUpper(coupon.Code)] = coupon
	return nil
}

func (r *fakeCouponRepo) Delete(_ context.Context, id uuid.UUID) error {
	for code, c := range r.coupons {
		if c.ID == id {
			delete(r.coupons, code)
			return nil
		}
	}
	return shared.ErrNotFound
}

func TestValidator_Validate(t *testing.T) {
	coupon, err := NewCoupon("SAVE15", 15, nil)
	require.NoError(t, err)
	validator := NewValidator(newFakeCouponRepo(coupon))

	got, err := validator.Validate(context.Background(), "SAVE15")
	require.NoError(t, err)
	assert.Equal(t, 15, got.DiscountPercentage)
}

func TestValidator_Validate_UnknownCode(t *testing.T) {
	validator := NewValidator(newFakeCouponRepo())

	_, err := validator.Validate(context.Background(), "NOPE")
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestValidator_Validate_EmptyCode(t *testing.T) {
	validator := NewValidator(newFakeCouponRepo())

	_, err := validator.Validate(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestValidator_Validate_Inactive(t *testing.T) {
	coupon, err := NewCoupon("OFF", 10, nil)
	require.NoError(t, err)
	coupon.Deactivate()
	validator := NewValidator(newFakeCouponRepo(coupon))

	_, err = validator.Validate(context.Background(), "OFF")
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestValidator_Validate_Expired(t *testing.T) {
	expiry := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	coupon, err := NewCoupon("LAPSED", 10, &expiry)
	require.NoError(t, err)

	validator := NewValidator(newFakeCouponRepo(coupon)).
		WithClock(func() time.Time { return expiry.Add(time.Minute) })

	_, err = validator.Validate(context.Background(), "LAPSED")
	assert.ErrorIs(t, err, ErrExpiredCoupon)
}

func TestValidator_Validate_NotYetExpired(t *testing.T) {
	expiry := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	coupon, err := NewCoupon("LIVE", 10, &expiry)
	require.NoError(t, err)

	validator := NewValidator(newFakeCouponRepo(coupon)).
		WithClock(func() time.Time { return expiry.Add(-time.Minute) })

	got, err := validator.Validate(context.Background(), "LIVE")
	require.NoError(t, err)
	assert.Equal(t, "LIVE", got.Code)
}
