package promotion

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/promotion"
	"github.com/storefront/backend/internal/domain/shared"
)

// CouponService handles operator coupon management and storefront
// code validation
type CouponService struct {
	coupons   promotion.CouponRepository
	validator *promotion.Validator
}

// NewCouponService creates a coupon service
func NewCouponService(coupons promotion.CouponRepository, validator *promotion.Validator) *CouponService {
	return &CouponService{
		coupons:   coupons,
		validator: validator,
	}
}

// Create registers a new coupon. Codes are stored uppercase so lookup is
// case-insensitive.
func (s *CouponService) Create(ctx context.Context, req CreateCouponRequest) (*CouponResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	if existing, err := s.coupons.FindActiveByCode(ctx, code); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A coupon with this code already exists")
	}

	coupon, err := promotion.NewCoupon(code, req.DiscountPercentage, req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	if err := s.coupons.Save(ctx, coupon); err != nil {
		return nil, err
	}

	response := ToCouponResponse(coupon)
	return &response, nil
}

// Update edits a coupon's discount, expiry and active flag
func (s *CouponService) Update(ctx context.Context, id uuid.UUID, req UpdateCouponRequest) (*CouponResponse, error) {
	coupon, err := s.coupons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := coupon.Update(req.DiscountPercentage, req.ExpiryDate); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		if *req.IsActive {
			coupon.Activate()
		} else {
			coupon.Deactivate()
		}
	}

	if err := s.coupons.Save(ctx, coupon); err != nil {
		return nil, err
	}

	response := ToCouponResponse(coupon)
	return &response, nil
}

// Get returns a coupon by ID
func (s *CouponService) Get(ctx context.Context, id uuid.UUID) (*CouponResponse, error) {
	coupon, err := s.coupons.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCouponResponse(coupon)
	return &response, nil
}

// List returns a page of coupons for the back office
func (s *CouponService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[CouponResponse], error) {
	coupons, err := s.coupons.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.coupons.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]CouponResponse, 0, len(coupons))
	for idx := range coupons {
		responses = append(responses, ToCouponResponse(&coupons[idx]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Delete removes a coupon permanently. Deactivation is usually the better
// operator action; delete exists for codes created by mistake.
func (s *CouponService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.coupons.FindByID(ctx, id); err != nil {
		return err
	}
	return s.coupons.Delete(ctx, id)
}

// Validate checks a code for a storefront client and returns the coupon it
// would apply
func (s *CouponService) Validate(ctx context.Context, req ValidateCouponRequest) (*CouponResponse, error) {
	coupon, err := s.validator.Validate(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	response := ToCouponResponse(coupon)
	return &response, nil
}
