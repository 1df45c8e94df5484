package promotion

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/promotion"
	"github.com/storefront/backend/internal/domain/shared"
)

type memCouponRepo struct {
	coupons map[uuid.UUID]*promotion.Coupon
}

func newMemCouponRepo() *memCouponRepo {
	return &memCouponRepo{coupons: make(map[uuid.UUID]*promotion.Coupon)}
}

func (r *memCouponRepo) FindByID(_ context.Context, id uuid.UUID) (*promotion.Coupon, error) {
	coupon, ok := r.coupons[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return coupon, nil
}

func (r *memCouponRepo) FindActiveByCode(_ context.Context, code string) (*promotion.Coupon, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for _, coupon := range r.coupons {
		if coupon.Code == normalized && coupon.IsActive {
			return coupon, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCouponRepo) FindAll(_ context.Context, _ shared.Filter) ([]promotion.Coupon, error) {
	all := make([]promotion.Coupon, 0, len(r.coupons))
	for _, coupon := range r.coupons {
		all = append(all, *coupon)
	}
	return all, nil
}

func (r *memCouponRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.coupons)), nil
}

func (r *memCouponRepo) Save(_ context.Context, coupon *promotion.Coupon) error {
	r.coupons[coupon.ID] = coupon
	return nil
}

func (r *memCouponRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.coupons[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.coupons, id)
	return nil
}

func newTestCouponService() (*CouponService, *memCouponRepo) {
	repo := newMemCouponRepo()
	return NewCouponService(repo, promotion.NewValidator(repo)), repo
}

func TestCouponService_CreateNormalizesCode(t *testing.T) {
	service, _ := newTestCouponService()

	resp, err := service.Create(context.Background(), CreateCouponRequest{
		Code:               "  save15 ",
		DiscountPercentage: 15,
	})
	require.NoError(t, err)

	assert.Equal(t, "SAVE15", resp.Code)
	assert.Equal(t, 15, resp.DiscountPercentage)
	assert.True(t, resp.IsActive)
}

func TestCouponService_CreateDuplicateCode(t *testing.T) {
	service, _ := newTestCouponService()

	_, err := service.Create(context.Background(), CreateCouponRequest{Code: "SAVE15", DiscountPercentage: 15})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), CreateCouponRequest{Code: "save15", DiscountPercentage: 20})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestCouponService_Update(t *testing.T) {
	service, _ := newTestCouponService()
	created, err := service.Create(context.Background(), CreateCouponRequest{Code: "SAVE15", DiscountPercentage: 15})
	require.NoError(t, err)

	expiry := time.Now().Add(48 * time.Hour)
	inactive := false
	updated, err := service.Update(context.Background(), created.ID, UpdateCouponRequest{
		DiscountPercentage: 25,
		ExpiryDate:         &expiry,
		IsActive:           &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, 25, updated.DiscountPercentage)
	assert.False(t, updated.IsActive)
	require.NotNil(t, updated.ExpiryDate)
	assert.WithinDuration(t, expiry, *updated.ExpiryDate, time.Second)
}

func TestCouponService_ValidateActiveCode(t *testing.T) {
	service, _ := newTestCouponService()
	_, err := service.Create(context.Background(), CreateCouponRequest{Code: "SAVE15", DiscountPercentage: 15})
	require.NoError(t, err)

	resp, err := service.Validate(context.Background(), ValidateCouponRequest{Code: "save15"})
	require.NoError(t, err)
	assert.Equal(t, "SAVE15", resp.Code)
}

func TestCouponService_ValidateRejections(t *testing.T) {
	service, _ := newTestCouponService()

	created, err := service.Create(context.Background(), CreateCouponRequest{Code: "SAVE15", DiscountPercentage: 15})
	require.NoError(t, err)

	t.Run("unknown code", func(t *testing.T) {
		_, err := service.Validate(context.Background(), ValidateCouponRequest{Code: "NOPE"})
		assert.ErrorIs(t, err, promotion.ErrInvalidCoupon)
	})

	t.Run("deactivated code", func(t *testing.T) {
		inactive := false
		_, err := service.Update(context.Background(), created.ID, UpdateCouponRequest{DiscountPercentage: 15, IsActive: &inactive})
		require.NoError(t, err)

		_, err = service.Validate(context.Background(), ValidateCouponRequest{Code: "SAVE15"})
		assert.ErrorIs(t, err, promotion.ErrInvalidCoupon)
	})

	t.Run("expired code", func(t *testing.T) {
		expiry := time.Now().Add(-time.Hour)
		expired, err := service.Create(context.Background(), CreateCouponRequest{
			Code:               "OLD10",
			DiscountPercentage: 10,
			ExpiryDate:         &expiry,
		})
		require.NoError(t, err)
		require.NotNil(t, expired)

		_, err = service.Validate(context.Background(), ValidateCouponRequest{Code: "OLD10"})
		assert.ErrorIs(t, err, promotion.ErrExpiredCoupon)
	})
}

func TestCouponService_List(t *testing.T) {
	service, _ := newTestCouponService()
	for _, code := range []string{"SAVE15", "SAVE20"} {
		_, err := service.Create(context.Background(), CreateCouponRequest{Code: code, DiscountPercentage: 15})
		require.NoError(t, err)
	}

	page, err := service.List(context.Background(), shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	assert.Len(t, page.Items, 2)
}

func TestCouponService_Delete(t *testing.T) {
	service, repo := newTestCouponService()
	created, err := service.Create(context.Background(), CreateCouponRequest{Code: "SAVE15", DiscountPercentage: 15})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	assert.Empty(t, repo.coupons)

	err = service.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
