package shopping

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// SessionLine is one line of the anonymous cart snapshot a browser submits
// at login. The server never stores it; it exists only as input to the merge.
type SessionLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	SalePrice decimal.Decimal `json:"sale_price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
}

// Validate checks the line is coherent enough to merge
func (l SessionLine) Validate() error {
	if l.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if l.Quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if l.UnitPrice.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}
	if l.SalePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}
	return nil
}

// SessionCart is the full anonymous cart snapshot captured at login
type SessionCart struct {
	Lines []SessionLine `json:"lines"`
}

// IsEmpty returns true if the snapshot has no lines
func (c SessionCart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// SessionWishlist is the anonymous wishlist snapshot captured at login
type SessionWishlist struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
}

// IsEmpty returns true if the snapshot has no product ids
func (w SessionWishlist) IsEmpty() bool {
	return len(w.ProductIDs) == 0
}
