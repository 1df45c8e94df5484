package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/shared"
)

// Event types for the order aggregate
const (
	EventTypeOrderCreated       = "order.created"
	EventTypeOrderStatusChanged = "order.status_changed"
)

// OrderCreatedEvent is emitted once after an order is committed. It carries
// the summary the real-time notification collaborator broadcasts; delivery
// is fire-and-forget and never part of the commit contract.
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	AccountID   *uuid.UUID      `json:"account_id,omitempty"`
	ItemCount   int             `json:"item_count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewOrderCreatedEvent creates an OrderCreatedEvent from an order
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, "Order", o.ID),
		OrderNumber:     o.OrderNumber,
		AccountID:       o.AccountID,
		ItemCount:       o.ItemCount(),
		TotalAmount:     o.TotalAmount,
	}
}

// OrderStatusChangedEvent is emitted on every operator status transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string      `json:"order_number"`
	From        OrderStatus `json:"from"`
	To          OrderStatus `json:"to"`
}

// NewOrderStatusChangedEvent creates an OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "Order", o.ID),
		OrderNumber:     o.OrderNumber,
		From:            from,
		To:              o.Status,
	}
}
