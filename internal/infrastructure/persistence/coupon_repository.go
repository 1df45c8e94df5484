package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/promotion"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormCouponRepository implements promotion.CouponRepository using GORM
type GormCouponRepository struct {
	db *gorm.DB
}

// NewGormCouponRepository creates a new GormCouponRepository
func NewGormCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// FindByID finds a coupon by its ID
func (r *GormCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*promotion.Coupon, error) {
	var coupon promotion.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// FindActiveByCode finds an active coupon by its code. Codes are stored
// uppercase; lookup is case-insensitive.
func (r *GormCouponRepository) FindActiveByCode(ctx context.Context, code string) (*promotion.Coupon, error) {
	var coupon promotion.Coupon
	if err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ?", strings.ToUpper(strings.TrimSpace(code)), true).
		First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &coupon, nil
}

// FindAll finds all coupons matching the filter
func (r *GormCouponRepository) FindAll(ctx context.Context, filter shared.Filter) ([]promotion.Coupon, error) {
	var coupons []promotion.Coupon
	query := r.applyFilter(r.db.WithContext(ctx).Model(&promotion.Coupon{}), filter)
	if err := query.Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// Count counts coupons matching the filter
func (r *GormCouponRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&promotion.Coupon{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a coupon
func (r *GormCouponRepository) Save(ctx context.Context, coupon *promotion.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

// Delete deletes a coupon
func (r *GormCouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&promotion.Coupon{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormCouponRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CouponSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormCouponRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToUpper(filter.Search) + "%"
		query = query.Where("code LIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	return query
}
