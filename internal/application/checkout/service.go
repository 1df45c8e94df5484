package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/inventory"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/promotion"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/storefront/backend/internal/domain/shopping"
)

// Commitment errors
var (
	ErrEmptyCart = shared.NewDomainError("EMPTY_CART", "Cannot place an order with an empty cart")
	// ErrCommitFatal marks the durability gap: stock was decremented but the
	// order record could not be written. Requires manual reconciliation.
	ErrCommitFatal = shared.NewDomainError("COMMIT_FAILED", "Order could not be recorded after stock was reserved; contact support")
)

// maxNumberAttempts bounds order-number collision retries per commitment
const maxNumberAttempts = 3

// ShippingCharges holds the two flat delivery tiers
type ShippingCharges struct {
	Inside  decimal.Decimal
	Outside decimal.Decimal
}

// DefaultShippingCharges returns the standard tiers (80 inside, 150 outside)
func DefaultShippingCharges() ShippingCharges {
	return ShippingCharges{
		Inside:  decimal.NewFromInt(80),
		Outside: decimal.NewFromInt(150),
	}
}

// charge returns the flat charge for a shipping type
func (c ShippingCharges) charge(t order.ShippingType) decimal.Decimal {
	if t == order.ShippingOutside {
		return c.Outside
	}
	return c.Inside
}

// Service turns a validated cart into a permanent order: it re-reads the
// catalog for authoritative prices, validates the coupon, reserves and
// decrements stock all-or-nothing, persists the frozen order, retires the
// account cart and emits a fire-and-forget order-created event.
type Service struct {
	carts     shopping.CartRepository
	products  catalog.ProductRepository
	validator *promotion.Validator
	ledger    inventory.Ledger
	orders    order.Repository
	publisher shared.EventPublisher
	logger    *zap.Logger
	charges   ShippingCharges
}

// NewService creates a checkout service
func NewService(carts shopping.CartRepository, products catalog.ProductRepository, validator *promotion.Validator, ledger inventory.Ledger, orders order.Repository, publisher shared.EventPublisher, logger *zap.Logger, charges ShippingCharges) *Service {
	return &Service{
		carts:     carts,
		products:  products,
		validator: validator,
		ledger:    ledger,
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		charges:   charges,
	}
}

// CommitOrder executes the commitment sequence. Inventory is decremented
// durably before the order record is written; if the order write then
// fails the error is fatal and logged for manual reconciliation. Failure
// to notify never fails the commit.
func (s *Service) CommitOrder(ctx context.Context, req CommitOrderRequest) (*OrderResponse, error) {
	lines, accountCart, err := s.resolveLines(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	address, err := valueobject.NewAddressInfo(req.Address.Name, req.Address.Phone, req.Address.Address, req.Address.City, req.Address.Pincode)
	if err != nil {
		var addrErr *valueobject.AddressError
		if errors.As(err, &addrErr) {
			return nil, shared.NewDomainError("INVALID_ADDRESS", addrErr.Reason)
		}
		return nil, err
	}

	if !req.ShippingType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SHIPPING", "Shipping type must be inside or outside")
	}

	var coupon *promotion.Coupon
	if req.CouponCode != "" {
		coupon, err = s.validator.Validate(ctx, req.CouponCode)
		if err != nil {
			return nil, err
		}
	}

	// Price snapshots come from the catalog at this moment, not from what
	// the client or a stale cart line claims.
	orderLines, reservations, err := s.snapshotLines(ctx, lines)
	if err != nil {
		return nil, err
	}

	subtotal := decimal.Zero
	for _, line := range orderLines {
		price := line.SalePrice
		if !price.IsPositive() {
			price = line.UnitPrice
		}
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	discountPct := 0
	discountAmount := decimal.Zero
	couponCode := ""
	if coupon != nil {
		discountPct = coupon.DiscountPercentage
		discountAmount = coupon.DiscountOn(subtotal)
		couponCode = coupon.Code
	}

	if err := s.ledger.ReserveAndDecrement(ctx, reservations); err != nil {
		return nil, err
	}

	// The order number comes from a max-scan, so two in-flight commitments
	// can draw the same one. The unique index catches the loser; rebuilding
	// with a fresh number keeps the collision away from the reconciliation
	// path now that stock is already consumed.
	var o *order.Order
	for attempt := 1; ; attempt++ {
		orderNumber, err := s.orders.GenerateOrderNumber(ctx)
		if err != nil {
			return nil, s.fatal(reservations, err)
		}

		o, err = order.NewOrder(orderNumber, req.AccountID, orderLines, address, req.ShippingType, s.charges.charge(req.ShippingType), couponCode, discountPct, discountAmount)
		if err != nil {
			return nil, s.fatal(reservations, err)
		}

		err = s.orders.Save(ctx, o)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrAlreadyExists) || attempt == maxNumberAttempts {
			return nil, s.fatal(reservations, err)
		}
		s.logger.Info("order number already claimed, regenerating",
			zap.String("order_number", orderNumber),
			zap.Int("attempt", attempt),
		)
	}

	if accountCart != nil {
		accountCart.Clear()
		if err := s.carts.Save(ctx, accountCart); err != nil {
			// The order exists and stock is consumed; a lingering cart is
			// an annoyance, not a correctness problem.
			s.logger.Error("failed to retire account cart after commitment",
				zap.String("order_number", o.OrderNumber),
				zap.Error(err),
			)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, o.GetDomainEvents()...); err != nil {
			s.logger.Warn("order created notification failed",
				zap.String("order_number", o.OrderNumber),
				zap.Error(err),
			)
		}
		o.ClearDomainEvents()
	}

	response := ToOrderResponse(o)
	response.ClearAnonymousCart = req.AccountID == nil
	return &response, nil
}

// resolveLines picks the line source: the server-side account cart for
// signed-in customers, the submitted snapshot for guests.
func (s *Service) resolveLines(ctx context.Context, req CommitOrderRequest) ([]order.LineInput, *shopping.Cart, error) {
	if req.AccountID == nil {
		// A product appears at most once per cart; repeated guest lines
		// fold into one by summing quantities.
		lines := make([]order.LineInput, 0, len(req.Lines))
		seen := make(map[uuid.UUID]int, len(req.Lines))
		for _, line := range req.Lines {
			if err := line.Validate(); err != nil {
				return nil, nil, err
			}
			if idx, ok := seen[line.ProductID]; ok {
				lines[idx].Quantity += line.Quantity
				continue
			}
			seen[line.ProductID] = len(lines)
			lines = append(lines, order.LineInput{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Size:      line.Size,
			})
		}
		return lines, nil, nil
	}

	cart, err := s.carts.FindByAccount(ctx, *req.AccountID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil, ErrEmptyCart
		}
		return nil, nil, err
	}

	lines := make([]order.LineInput, 0, len(cart.Items))
	for idx := range cart.Items {
		item := &cart.Items[idx]
		lines = append(lines, order.LineInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Size:      item.Size,
		})
	}
	return lines, cart, nil
}

// snapshotLines re-reads every product and freezes title and prices onto
// the order lines, returning the ledger reservations alongside
func (s *Service) snapshotLines(ctx context.Context, lines []order.LineInput) ([]order.LineInput, []inventory.ReservationLine, error) {
	snapshots := make([]order.LineInput, 0, len(lines))
	reservations := make([]inventory.ReservationLine, 0, len(lines))

	for _, line := range lines {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, nil, err
		}
		snapshots = append(snapshots, order.LineInput{
			ProductID: product.ID,
			Title:     product.Title,
			UnitPrice: product.Price,
			SalePrice: product.SalePrice,
			Quantity:  line.Quantity,
			Size:      line.Size,
		})
		reservations = append(reservations, inventory.ReservationLine{
			ProductID: product.ID,
			Quantity:  line.Quantity,
		})
	}
	return snapshots, reservations, nil
}

// fatal reports the durability gap after stock has been decremented
func (s *Service) fatal(reservations []inventory.ReservationLine, cause error) error {
	fields := make([]zap.Field, 0, len(reservations)+1)
	fields = append(fields, zap.Error(cause))
	for _, r := range reservations {
		fields = append(fields, zap.Int("qty_"+r.ProductID.String(), r.Quantity))
	}
	s.logger.Error("stock decremented but order persistence failed; manual reconciliation required", fields...)
	return ErrCommitFatal
}
