package shopping

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shopping"
)

// CartService handles account cart operations. Quantity ceilings are
// enforced here at explicit edit time; the hard check happens again at
// commitment against the ledger.
type CartService struct {
	carts    shopping.CartRepository
	products catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(carts shopping.CartRepository, products catalog.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

// Get returns the account cart, creating it on first interaction
func (s *CartService) Get(ctx context.Context, accountID uuid.UUID) (*CartResponse, error) {
	cart, err := s.carts.FindOrCreateByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	response := ToCartResponse(cart)
	return &response, nil
}

// AddItem adds a product to the account cart, snapshotting the current
// catalog price. Adding an existing product folds quantities.
func (s *CartService) AddItem(ctx context.Context, accountID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.FindOrCreateByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	requested := req.Quantity
	if existing := cart.Item(req.ProductID); existing != nil {
		requested += existing.Quantity
	}
	if !product.HasStock(requested) {
		return nil, shared.ErrInsufficientStock
	}

	if _, err := cart.AddItem(product.ID, product.Title, product.Price, product.SalePrice, req.Quantity, req.Size); err != nil {
		return nil, err
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	response := ToCartResponse(cart)
	return &response, nil
}

// UpdateQuantity replaces a line's quantity, ceiling-checked against the
// product's current stock
func (s *CartService) UpdateQuantity(ctx context.Context, accountID, productID uuid.UUID, quantity int) (*CartResponse, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := cart.SetQuantity(productID, quantity, product.TotalStock); err != nil {
		return nil, err
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	response := ToCartResponse(cart)
	return &response, nil
}

// RemoveItem deletes a line from the account cart
func (s *CartService) RemoveItem(ctx context.Context, accountID, productID uuid.UUID) (*CartResponse, error) {
	cart, err := s.carts.FindByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := cart.RemoveItem(productID); err != nil {
		return nil, err
	}

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	response := ToCartResponse(cart)
	return &response, nil
}

// Clear empties the account cart
func (s *CartService) Clear(ctx context.Context, accountID uuid.UUID) error {
	cart, err := s.carts.FindByAccount(ctx, accountID)
	if err != nil {
		return err
	}

	cart.Clear()
	return s.carts.Save(ctx, cart)
}
