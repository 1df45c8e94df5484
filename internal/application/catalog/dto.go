package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// CreateProductRequest adds a product to the catalog
type CreateProductRequest struct {
	Title       string  `json:"title" binding:"required,max=200"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	SalePrice   float64 `json:"sale_price" binding:"gte=0"`
	TotalStock  int     `json:"total_stock" binding:"gte=0"`
}

// UpdatePricingRequest changes a product's regular and sale price
type UpdatePricingRequest struct {
	Price     float64 `json:"price" binding:"required,gt=0"`
	SalePrice float64 `json:"sale_price" binding:"gte=0"`
}

// SetStockRequest replaces a product's stock level
type SetStockRequest struct {
	TotalStock int `json:"total_stock" binding:"gte=0"`
}

// ListRequest carries pagination and search for the catalog
type ListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
}

// Filter converts the list request into a repository filter
func (r ListRequest) Filter() shared.Filter {
	filter := shared.DefaultFilter()
	if r.Page > 0 {
		filter.Page = r.Page
	}
	if r.PageSize > 0 && r.PageSize <= 100 {
		filter.PageSize = r.PageSize
	}
	filter.Search = r.Search
	return filter
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	SalePrice      float64   `json:"sale_price"`
	EffectivePrice float64   `json:"effective_price"`
	PriceDisplay   string    `json:"price_display"`
	OnSale         bool      `json:"on_sale"`
	TotalStock     int       `json:"total_stock"`
	InStock        bool      `json:"in_stock"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToProductResponse converts a product aggregate to its response form
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		Price:          p.Price.InexactFloat64(),
		SalePrice:      p.SalePrice.InexactFloat64(),
		EffectivePrice: p.EffectivePrice().InexactFloat64(),
		PriceDisplay:   p.EffectivePriceMoney().String(),
		OnSale:         p.OnSale(),
		TotalStock:     p.TotalStock,
		InStock:        p.TotalStock > 0,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toDecimal(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}
