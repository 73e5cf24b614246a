package ports

import (
	"context"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
)

// CreateProductInput carries all vendor-supplied fields for a new product.
type CreateProductInput struct {
	Name           string
	Description    string
	Price          float64
	OriginalPrice  float64
	Discount       int
	Category       string
	Subcategory    string
	Images         []string
	Stock          int
	VendorID       string
	Specifications map[string]string
	Status         domain.ProductStatus
}

// ProductService defines use-case operations over the catalog.
type ProductService interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Search(ctx context.Context, params SearchParams) ([]*domain.Product, error)
	Create(ctx context.Context, actor string, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, actor, id string, patch ProductUpdate) (*domain.Product, error)
	Delete(ctx context.Context, actor, id string) (bool, error)
}
