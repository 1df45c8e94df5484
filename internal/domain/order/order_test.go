package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

func testAddress(t *testing.T) valueobject.AddressInfo {
	addr, err := valueobject.NewAddressInfo("Rahim Uddin", "01712345678", "House 12, Road 5", "Dhaka", "1207")
	require.NoError(t, err)
	return addr
}

func testLines() []LineInput {
	return []LineInput{
		{
			ProductID: uuid.New(),
			Title:     "T-Shirt",
			UnitPrice: decimal.NewFromInt(500),
			Quantity:  2,
		},
		{
			ProductID: uuid.New(),
			Title:     "Hoodie",
			UnitPrice: decimal.NewFromInt(1500),
			SalePrice: decimal.NewFromInt(1200),
			Quantity:  1,
		},
	}
}

func createTestOrder(t *testing.T) *Order {
	o, err := NewOrder("ORD-2026-00001", nil, testLines(), testAddress(t), ShippingInside, decimal.NewFromInt(80), "", 0, decimal.Zero)
	require.NoError(t, err)
	return o
}

func TestOrderStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  OrderStatus
		isValid bool
	}{
		{OrderStatusPending, true},
		{OrderStatusConfirmed, true},
		{OrderStatusInProcess, true},
		{OrderStatusInShipping, true},
		{OrderStatusDelivered, true},
		{OrderStatusRejected, true},
		{OrderStatus("shipped"), false},
		{OrderStatus(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from     OrderStatus
		to       OrderStatus
		canTrans bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusRejected, true},
		{OrderStatusPending, OrderStatusInShipping, false},
		{OrderStatusConfirmed, OrderStatusInProcess, true},
		{OrderStatusConfirmed, OrderStatusRejected, true},
		{OrderStatusInProcess, OrderStatusInShipping, true},
		{OrderStatusInShipping, OrderStatusDelivered, true},
		{OrderStatusInShipping, OrderStatusRejected, true},
		{OrderStatusDelivered, OrderStatusRejected, false},
		{OrderStatusRejected, OrderStatusConfirmed, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.canTrans, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestNewOrder_Totals(t *testing.T) {
	o := createTestOrder(t)

	// 2x500 + 1x1200 (sale price wins) = 2200, plus 80 shipping
	assert.True(t, o.Subtotal.Equal(decimal.NewFromInt(2200)), "got %s", o.Subtotal)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(2280)), "got %s", o.TotalAmount)
	assert.Equal(t, "2200.00 BDT", o.SubtotalMoney().String())
	assert.Equal(t, "2280.00 BDT", o.TotalMoney().String())
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
	assert.Equal(t, 2, o.ItemCount())
	assert.Equal(t, 3, o.TotalQuantity())
}

func TestNewOrder_WithDiscount(t *testing.T) {
	// 15% of 2200 = 330; total = 2200 - 330 + 80 = 1950
	o, err := NewOrder("ORD-2026-00002", nil, testLines(), testAddress(t), ShippingInside, decimal.NewFromInt(80), "SAVE15", 15, decimal.NewFromInt(330))
	require.NoError(t, err)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(1950)), "got %s", o.TotalAmount)
	assert.Equal(t, "SAVE15", o.CouponCode)
}

func TestNewOrder_DiscountExceedsSubtotal(t *testing.T) {
	_, err := NewOrder("ORD-2026-00003", nil, testLines(), testAddress(t), ShippingInside, decimal.NewFromInt(80), "BIG", 100, decimal.NewFromInt(99999))
	assert.Error(t, err)
}

func TestNewOrder_Validation(t *testing.T) {
	addr := testAddress(t)
	lines := testLines()

	t.Run("empty order number", func(t *testing.T) {
		_, err := NewOrder("", nil, lines, addr, ShippingInside, decimal.NewFromInt(80), "", 0, decimal.Zero)
		assert.Error(t, err)
	})
	t.Run("no lines", func(t *testing.T) {
		_, err := NewOrder("ORD-2026-00004", nil, nil, addr, ShippingInside, decimal.NewFromInt(80), "", 0, decimal.Zero)
		assert.Error(t, err)
	})
	t.Run("bad shipping type", func(t *testing.T) {
		_, err := NewOrder("ORD-2026-00004", nil, lines, addr, ShippingType("express"), decimal.NewFromInt(80), "", 0, decimal.Zero)
		assert.Error(t, err)
	})
	t.Run("negative shipping charge", func(t *testing.T) {
		_, err := NewOrder("ORD-2026-00004", nil, lines, addr, ShippingInside, decimal.NewFromInt(-1), "", 0, decimal.Zero)
		assert.Error(t, err)
	})
}

func TestNewOrder_EmitsCreatedEvent(t *testing.T) {
	o := createTestOrder(t)

	events := o.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "order.created", events[0].EventType())
}

func TestOrder_Transition(t *testing.T) {
	o := createTestOrder(t)
	o.ClearDomainEvents()

	require.NoError(t, o.Transition(OrderStatusConfirmed))
	assert.Equal(t, OrderStatusConfirmed, o.Status)

	events := o.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "order.status_changed", events[0].EventType())
}

func TestOrder_Transition_SameStatusIsNoOp(t *testing.T) {
	o := createTestOrder(t)
	o.ClearDomainEvents()

	require.NoError(t, o.Transition(OrderStatusPending))
	assert.Empty(t, o.GetDomainEvents())
}

func TestOrder_Transition_Invalid(t *testing.T) {
	o := createTestOrder(t)

	err := o.Transition(OrderStatusDelivered)
	assert.Error(t, err)
	assert.Equal(t, OrderStatusPending, o.Status)

	assert.Error(t, o.Transition(OrderStatus("lost")))
}

func TestOrder_Transition_DeliveredForcesPaid(t *testing.T) {
	o := createTestOrder(t)

	require.NoError(t, o.Transition(OrderStatusConfirmed))
	require.NoError(t, o.Transition(OrderStatusInProcess))
	require.NoError(t, o.Transition(OrderStatusInShipping))
	require.NoError(t, o.Transition(OrderStatusDelivered))

	assert.Equal(t, PaymentStatusPaid, o.PaymentStatus)
	assert.True(t, o.IsTerminal())
}

func TestOrder_Transition_RejectedIsTerminal(t *testing.T) {
	o := createTestOrder(t)

	require.NoError(t, o.Transition(OrderStatusRejected))
	assert.True(t, o.IsTerminal())
	assert.Error(t, o.Transition(OrderStatusConfirmed))
	// payment stays pending on rejection
	assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
}
