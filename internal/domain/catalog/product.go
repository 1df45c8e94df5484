package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Product represents a sellable catalog item. TotalStock is the sole
// authority on sellability and is decremented only by the inventory ledger
// during order commitment, never by cart operations.
type Product struct {
	shared.BaseAggregateRoot
	Title       string
	Description string
	Price       decimal.Decimal
	SalePrice   decimal.Decimal // zero means no sale
	TotalStock  int
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new catalog product
func NewProduct(title, description string, price, salePrice decimal.Decimal, totalStock int) (*Product, error) {
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Product title cannot exceed 200 characters")
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price must be positive")
	}
	if salePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}
	if salePrice.GreaterThan(price) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Sale price cannot exceed regular price")
	}
	if totalStock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Title:             title,
		Description:       description,
		Price:             price,
		SalePrice:         salePrice,
		TotalStock:        totalStock,
	}, nil
}

// UpdatePricing updates the regular and sale price
func (p *Product) UpdatePricing(price, salePrice decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Product price must be positive")
	}
	if salePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}
	if salePrice.GreaterThan(price) {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot exceed regular price")
	}

	p.Price = price
	p.SalePrice = salePrice
	p.UpdatedAt = time.Now()

	return nil
}

// SetStock replaces the available stock level (operator restock/correction)
func (p *Product) SetStock(totalStock int) error {
	if totalStock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	p.TotalStock = totalStock
	p.UpdatedAt = time.Now()

	return nil
}

// EffectivePrice returns the sale price when one is set, otherwise the
// regular price
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.IsPositive() {
		return p.SalePrice
	}
	return p.Price
}

// EffectivePriceMoney returns the effective price as a Money value object
func (p *Product) EffectivePriceMoney() valueobject.Money {
	return valueobject.NewMoneyBDT(p.EffectivePrice())
}

// HasStock returns true if at least quantity units are available
func (p *Product) HasStock(quantity int) bool {
	return quantity > 0 && p.TotalStock >= quantity
}

// OnSale returns true if a sale price is set
func (p *Product) OnSale() bool {
	return p.SalePrice.IsPositive()
}
