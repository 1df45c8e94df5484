package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// Service answers order queries and applies operator status transitions
type Service struct {
	orders    order.Repository
	publisher shared.EventPublisher
	logger    *zap.Logger
}

// NewService creates an order service
func NewService(orders order.Repository, publisher shared.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		orders:    orders,
		publisher: publisher,
		logger:    logger,
	}
}

// Get returns a single order by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*checkout.OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := checkout.ToOrderResponse(o)
	return &response, nil
}

// GetByNumber returns a single order by its customer-facing number
func (s *Service) GetByNumber(ctx context.Context, orderNumber string) (*checkout.OrderResponse, error) {
	o, err := s.orders.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := checkout.ToOrderResponse(o)
	return &response, nil
}

// GetOwned returns an order only when it belongs to the given account.
// Guest orders are never visible through this path.
func (s *Service) GetOwned(ctx context.Context, accountID, id uuid.UUID) (*checkout.OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.AccountID == nil || *o.AccountID != accountID {
		return nil, shared.ErrForbidden
	}
	response := checkout.ToOrderResponse(o)
	return &response, nil
}

// ListForAccount returns the account's own orders, newest first
func (s *Service) ListForAccount(ctx context.Context, accountID uuid.UUID, req ListRequest) (*shared.Paginated[checkout.OrderResponse], error) {
	filter := req.Filter()
	orders, err := s.orders.FindByAccount(ctx, accountID, filter)
	if err != nil {
		return nil, err
	}
	filter.Filters["account_id"] = accountID
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToSummaries(orders), total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListAll returns orders across all accounts for back-office screens,
// optionally filtered by status
func (s *Service) ListAll(ctx context.Context, req ListRequest) (*shared.Paginated[checkout.OrderResponse], error) {
	if req.Status != "" && !order.OrderStatus(req.Status).IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status filter")
	}
	filter := req.Filter()
	orders, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToSummaries(orders), total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdateStatus transitions an order to the target status under optimistic
// locking. A concurrent operator edit surfaces as a concurrency conflict
// rather than silently overwriting.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req UpdateStatusRequest) (*checkout.OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := o.Transition(order.OrderStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.orders.SaveWithLock(ctx, o); err != nil {
		if errors.Is(err, shared.ErrConcurrencyConflict) {
			return nil, shared.ErrConcurrencyConflict
		}
		return nil, err
	}

	if s.publisher != nil && len(o.GetDomainEvents()) > 0 {
		if err := s.publisher.Publish(ctx, o.GetDomainEvents()...); err != nil {
			s.logger.Warn("order status notification failed",
				zap.String("order_number", o.OrderNumber),
				zap.Error(err),
			)
		}
		o.ClearDomainEvents()
	}

	response := checkout.ToOrderResponse(o)
	return &response, nil
}
