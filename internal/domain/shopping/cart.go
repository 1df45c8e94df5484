package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// CartItem represents a line in a cart. Prices are snapshotted from the
// catalog at the time the line is created so the cart renders without a
// product lookup; the authoritative price is re-read at commitment.
type CartItem struct {
	ID        uuid.UUID
	CartID    uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Title     string
	UnitPrice decimal.Decimal
	SalePrice decimal.Decimal // zero means no sale
	Quantity  int
	Size      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// EffectivePrice returns the sale price when one is set, otherwise the
// regular unit price
func (i *CartItem) EffectivePrice() decimal.Decimal {
	if i.SalePrice.IsPositive() {
		return i.SalePrice
	}
	return i.UnitPrice
}

// Amount returns EffectivePrice * Quantity
func (i *CartItem) Amount() decimal.Decimal {
	return i.EffectivePrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the durable per-account cart aggregate. One open cart exists per
// account; a product appears at most once - adding an existing product folds
// quantities instead of duplicating the line.
type Cart struct {
	shared.BaseAggregateRoot
	AccountID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items     []CartItem `gorm:"foreignKey:CartID"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for an account
func NewCart(accountID uuid.UUID) (*Cart, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Account ID cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountID:         accountID,
		Items:             make([]CartItem, 0),
	}, nil
}

// AddItem adds a line to the cart. If the product is already present the
// quantities are added; the stored price snapshot is refreshed to the one
// supplied by the caller.
func (c *Cart) AddItem(productID uuid.UUID, title string, unitPrice, salePrice decimal.Decimal, quantity int, size string) (*CartItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if unitPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price must be positive")
	}
	if salePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}

	now := time.Now()
	if existing := c.Item(productID); existing != nil {
		existing.Quantity += quantity
		existing.Title = title
		existing.UnitPrice = unitPrice
		existing.SalePrice = salePrice
		if size != "" {
			existing.Size = size
		}
		existing.UpdatedAt = now
		c.UpdatedAt = now
		return existing, nil
	}

	item := CartItem{
		ID:        uuid.New(),
		CartID:    c.ID,
		ProductID: productID,
		Title:     title,
		UnitPrice: unitPrice,
		SalePrice: salePrice,
		Quantity:  quantity,
		Size:      size,
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.Items = append(c.Items, item)
	c.UpdatedAt = now
	return &c.Items[len(c.Items)-1], nil
}

// SetQuantity replaces a line's quantity. The available argument is the
// product's current stock; an explicit quantity edit is ceiling-checked
// against it (a merge is not, see MergeLine).
func (c *Cart) SetQuantity(productID uuid.UUID, quantity, available int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if quantity > available {
		return shared.ErrInsufficientStock
	}

	item := c.Item(productID)
	if item == nil {
		return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
	}

	now := time.Now()
	item.Quantity = quantity
	item.UpdatedAt = now
	c.UpdatedAt = now
	return nil
}

// MergeLine folds an anonymous cart line into this cart: quantities are
// added when the product is already present, otherwise the line is created.
// No stock ceiling applies - a merge preserves intent, it does not validate
// a purchase.
func (c *Cart) MergeLine(line SessionLine) error {
	if err := line.Validate(); err != nil {
		return err
	}

	now := time.Now()
	if existing := c.Item(line.ProductID); existing != nil {
		existing.Quantity += line.Quantity
		existing.UpdatedAt = now
		c.UpdatedAt = now
		return nil
	}

	c.Items = append(c.Items, CartItem{
		ID:        uuid.New(),
		CartID:    c.ID,
		ProductID: line.ProductID,
		Title:     line.Title,
		UnitPrice: line.UnitPrice,
		SalePrice: line.SalePrice,
		Quantity:  line.Quantity,
		Size:      line.Size,
		CreatedAt: now,
		UpdatedAt: now,
	})
	c.UpdatedAt = now
	return nil
}

// RemoveItem deletes a line from the cart
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	for idx, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.NewDomainError("ITEM_NOT_FOUND", "Cart item not found")
}

// Clear removes every line; called after a successful order commitment
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.UpdatedAt = time.Now()
}

// Item returns the line for a product, or nil
func (c *Cart) Item(productID uuid.UUID) *CartItem {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			return &c.Items[idx]
		}
	}
	return nil
}

// IsEmpty returns true if the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemCount returns the number of distinct lines
func (c *Cart) ItemCount() int {
	return len(c.Items)
}

// Subtotal returns the sum of all line amounts
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for idx := range c.Items {
		total = total.Add(c.Items[idx].Amount())
	}
	return total
}
