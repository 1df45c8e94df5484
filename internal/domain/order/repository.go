package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders. Orders are
// append-only: Save is called once at commitment and again only for status
// transitions.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, order *Order) error
	SaveWithLock(ctx context.Context, order *Order) error
	GenerateOrderNumber(ctx context.Context) (string, error)
}
