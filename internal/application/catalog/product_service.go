package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductService handles catalog reads for the storefront and product
// management for operators
type ProductService struct {
	products catalog.ProductRepository
}

// NewProductService creates a product service
func NewProductService(products catalog.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Title, req.Description, toDecimal(req.Price), toDecimal(req.SalePrice), req.TotalStock)
	if err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Get returns a product by ID
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List returns a page of products
func (s *ProductService) List(ctx context.Context, req ListRequest) (*shared.Paginated[ProductResponse], error) {
	filter := req.Filter()
	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for idx := range products {
		responses = append(responses, ToProductResponse(&products[idx]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// UpdatePricing changes a product's prices. Already committed orders keep
// their frozen snapshots.
func (s *ProductService) UpdatePricing(ctx context.Context, id uuid.UUID, req UpdatePricingRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.UpdatePricing(toDecimal(req.Price), toDecimal(req.SalePrice)); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// SetStock replaces a product's stock level (restock or correction)
func (s *ProductService) SetStock(ctx context.Context, id uuid.UUID, req SetStockRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.SetStock(req.TotalStock); err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}
