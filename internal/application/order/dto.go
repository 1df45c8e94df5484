package order

import (
	"github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// UpdateStatusRequest moves an order along the fulfilment pipeline
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListRequest carries pagination and an optional status filter
type ListRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
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
	if r.Status != "" {
		filter.Filters["status"] = r.Status
	}
	return filter
}

// ToSummaries converts a page of orders to response form
func ToSummaries(orders []order.Order) []checkout.OrderResponse {
	summaries := make([]checkout.OrderResponse, 0, len(orders))
	for idx := range orders {
		summaries = append(summaries, checkout.ToOrderResponse(&orders[idx]))
	}
	return summaries
}
