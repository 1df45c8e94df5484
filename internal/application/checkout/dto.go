package checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shopping"
)

// AddressRequest carries the delivery address fields for commitment
type AddressRequest struct {
	Name    string
	Phone   string
	Address string
	City    string
	Pincode string
}

// CommitOrderRequest asks for a cart to be turned into a permanent order.
// For signed-in customers AccountID is set and the server-side account cart
// is used; for guests AccountID is nil and Lines carries the anonymous cart
// snapshot.
type CommitOrderRequest struct {
	AccountID    *uuid.UUID
	Lines        []shopping.SessionLine
	Address      AddressRequest
	ShippingType order.ShippingType
	CouponCode   string
}

// OrderItemResponse represents a frozen order line in API responses
type OrderItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Title     string    `json:"title"`
	UnitPrice float64   `json:"unit_price"`
	SalePrice float64   `json:"sale_price"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size,omitempty"`
	Amount    float64   `json:"amount"`
}

// OrderResponse represents a committed order in API responses
type OrderResponse struct {
	ID                 uuid.UUID           `json:"id"`
	OrderNumber        string              `json:"order_number"`
	AccountID          *uuid.UUID          `json:"account_id,omitempty"`
	Items              []OrderItemResponse `json:"items"`
	Name               string              `json:"name"`
	Phone              string              `json:"phone"`
	Address            string              `json:"address"`
	City               string              `json:"city"`
	Pincode            string              `json:"pincode"`
	ShippingType       string              `json:"shipping_type"`
	ShippingCharge     float64             `json:"shipping_charge"`
	CouponCode         string              `json:"coupon_code,omitempty"`
	DiscountPercentage int                 `json:"discount_percentage"`
	DiscountAmount     float64             `json:"discount_amount"`
	Subtotal           float64             `json:"subtotal"`
	SubtotalDisplay    string              `json:"subtotal_display"`
	TotalAmount        float64             `json:"total_amount"`
	TotalDisplay       string              `json:"total_display"`
	Status             string              `json:"status"`
	PaymentStatus      string              `json:"payment_status"`
	PlacedAt           time.Time           `json:"placed_at"`
	// ClearAnonymousCart tells a guest client to drop its browser-local cart
	ClearAnonymousCart bool `json:"clear_anonymous_cart,omitempty"`
}

// ToOrderResponse converts an order aggregate to its response form
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for idx := range o.Items {
		item := &o.Items[idx]
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Title:     item.Title,
			UnitPrice: item.UnitPrice.InexactFloat64(),
			SalePrice: item.SalePrice.InexactFloat64(),
			Quantity:  item.Quantity,
			Size:      item.Size,
			Amount:    item.Amount.InexactFloat64(),
		})
	}
	return OrderResponse{
		ID:                 o.ID,
		OrderNumber:        o.OrderNumber,
		AccountID:          o.AccountID,
		Items:              items,
		Name:               o.Address.Name,
		Phone:              o.Address.Phone,
		Address:            o.Address.Address,
		City:               o.Address.City,
		Pincode:            o.Address.Pincode,
		ShippingType:       string(o.ShippingType),
		ShippingCharge:     o.ShippingCharge.InexactFloat64(),
		CouponCode:         o.CouponCode,
		DiscountPercentage: o.DiscountPercentage,
		DiscountAmount:     o.DiscountAmount.InexactFloat64(),
		Subtotal:           o.Subtotal.InexactFloat64(),
		SubtotalDisplay:    o.SubtotalMoney().String(),
		TotalAmount:        o.TotalAmount.InexactFloat64(),
		TotalDisplay:       o.TotalMoney().String(),
		Status:             string(o.Status),
		PaymentStatus:      string(o.PaymentStatus),
		PlacedAt:           o.PlacedAt,
	}
}
