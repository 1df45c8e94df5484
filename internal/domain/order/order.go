package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// OrderStatus represents the operator-driven fulfilment state of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusInProcess  OrderStatus = "in_process"
	OrderStatusInShipping OrderStatus = "in_shipping"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusRejected   OrderStatus = "rejected"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusInProcess,
		OrderStatusInShipping, OrderStatusDelivered, OrderStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Rejection is allowed from any state before delivery; delivered and
// rejected are terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusConfirmed || target == OrderStatusRejected
	case OrderStatusConfirmed:
		return target == OrderStatusInProcess || target == OrderStatusRejected
	case OrderStatusInProcess:
		return target == OrderStatusInShipping || target == OrderStatusRejected
	case OrderStatusInShipping:
		return target == OrderStatusDelivered || target == OrderStatusRejected
	case OrderStatusDelivered, OrderStatusRejected:
		return false
	}
	return false
}

// PaymentStatus represents the cash-on-delivery payment state
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// ShippingType selects one of the two flat delivery tiers
type ShippingType string

const (
	ShippingInside  ShippingType = "inside"
	ShippingOutside ShippingType = "outside"
)

// IsValid checks if the shipping type is known
func (t ShippingType) IsValid() bool {
	return t == ShippingInside || t == ShippingOutside
}

// OrderItem is a frozen snapshot of a cart line at the moment of commitment.
// It never references the live product or cart, so later price or cart
// mutations cannot alter a past order.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null"`
	Title     string
	UnitPrice decimal.Decimal
	SalePrice decimal.Decimal
	Quantity  int
	Size      string
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// LineInput carries one cart line into order creation
type LineInput struct {
	ProductID uuid.UUID
	Title     string
	UnitPrice decimal.Decimal
	SalePrice decimal.Decimal
	Quantity  int
	Size      string
}

// effectivePrice is the sale price when set, otherwise the unit price
func (l LineInput) effectivePrice() decimal.Decimal {
	if l.SalePrice.IsPositive() {
		return l.SalePrice
	}
	return l.UnitPrice
}

// Order is an immutable record of a committed purchase. Only Status and
// PaymentStatus change after creation, via operator transitions.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber        string     `gorm:"uniqueIndex;not null"`
	AccountID          *uuid.UUID `gorm:"type:uuid;index"` // nil for guest orders
	Items              []OrderItem `gorm:"foreignKey:OrderID"`
	Address            valueobject.AddressInfo `gorm:"embedded;embeddedPrefix:address_"`
	ShippingType       ShippingType
	ShippingCharge     decimal.Decimal
	CouponCode         string
	DiscountPercentage int
	DiscountAmount     decimal.Decimal
	Subtotal           decimal.Decimal
	TotalAmount        decimal.Decimal
	Status             OrderStatus
	PaymentStatus      PaymentStatus
	PlacedAt           time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending cash-on-delivery order from frozen line
// snapshots and pre-computed discount figures.
// totalAmount = subtotal - discountAmount + shippingCharge; the discount
// base excludes shipping.
func NewOrder(orderNumber string, accountID *uuid.UUID, lines []LineInput, address valueobject.AddressInfo, shippingType ShippingType, shippingCharge decimal.Decimal, couponCode string, discountPercentage int, discountAmount decimal.Decimal) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot create an order without items")
	}
	if err := address.Validate(); err != nil {
		return nil, err
	}
	if !shippingType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SHIPPING", fmt.Sprintf("Unknown shipping type %q", shippingType))
	}
	if shippingCharge.IsNegative() {
		return nil, shared.NewDomainError("INVALID_SHIPPING", "Shipping charge cannot be negative")
	}
	if discountAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}

	o := &Order{
		BaseAggregateRoot:  shared.NewBaseAggregateRoot(),
		OrderNumber:        orderNumber,
		AccountID:          accountID,
		Items:              make([]OrderItem, 0, len(lines)),
		Address:            address,
		ShippingType:       shippingType,
		ShippingCharge:     shippingCharge,
		CouponCode:         couponCode,
		DiscountPercentage: discountPercentage,
		DiscountAmount:     discountAmount,
		Status:             OrderStatusPending,
		PaymentStatus:      PaymentStatusPending,
		PlacedAt:           time.Now(),
	}

	subtotal := valueobject.ZeroBDT()
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
		}
		if line.Quantity < 1 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
		}
		lineTotal := valueobject.NewMoneyBDT(line.effectivePrice()).MultiplyByInt(int64(line.Quantity))
		o.Items = append(o.Items, OrderItem{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: line.ProductID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice,
			SalePrice: line.SalePrice,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Amount:    lineTotal.Amount(),
			CreatedAt: o.CreatedAt,
		})
		subtotal = subtotal.MustAdd(lineTotal)
	}

	discount := valueobject.NewMoneyBDT(discountAmount)
	if discountAmount.GreaterThan(subtotal.Amount()) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the item subtotal")
	}

	total := subtotal.MustSubtract(discount).MustAdd(valueobject.NewMoneyBDT(shippingCharge))
	o.Subtotal = subtotal.Amount()
	o.TotalAmount = total.Amount()

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// Transition moves the order to the target status. Re-applying the current
// status is a no-op; transitioning to delivered forces the cash-on-delivery
// payment to paid.
func (o *Order) Transition(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown order status %q", target))
	}
	if o.Status == target {
		return nil
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot move order from %s to %s", o.Status, target))
	}

	from := o.Status
	o.Status = target
	if target == OrderStatusDelivered {
		o.PaymentStatus = PaymentStatusPaid
	}
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))

	return nil
}

// SubtotalMoney returns the item subtotal as a money value
func (o *Order) SubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyBDT(o.Subtotal)
}

// TotalMoney returns the grand total as a money value
func (o *Order) TotalMoney() valueobject.Money {
	return valueobject.NewMoneyBDT(o.TotalAmount)
}

// ItemCount returns the number of line snapshots
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all line quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for idx := range o.Items {
		total += o.Items[idx].Quantity
	}
	return total
}

// IsTerminal returns true when no further status transition is possible
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusRejected
}
