package ports

import (
	"context"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
)

// ProductFilter carries field-equality constraints for FindAll. Zero-valued
// fields impose no constraint; an empty filter returns every record in
// stored order.
type ProductFilter struct {
	Category    string
	Subcategory string
	VendorID    string
	Status      domain.ProductStatus
}

// SearchParams carries the free-text search stages. Query is split on
// whitespace into lowercase terms; a product matches when any term is a
// case-insensitive substring of its name, description, category, or
// subcategory. Category then narrows by exact case-insensitive match, and
// MinPrice/MaxPrice bound the price when non-nil. An empty Query skips the
// text stage entirely.
type SearchParams struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// ProductUpdate is a partial-record patch for products. Nil fields are left
// untouched. Specifications, when non-nil, replaces the whole map (shallow
// merge at field granularity, not key granularity).
type ProductUpdate struct {
	Name           *string
	Description    *string
	Price          *float64
	OriginalPrice  *float64
	Discount       *int
	Category       *string
	Subcategory    *string
	Images         []string
	Stock          *int
	Rating         *float64
	Reviews        *int
	Specifications map[string]string
	Status         *domain.ProductStatus
}

// ProductRepository defines persistence operations for the catalog.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindAll(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	Search(ctx context.Context, params SearchParams) ([]*domain.Product, error)

	// Create assigns a fresh id and stamps both timestamps. No field
	// consistency is enforced (price/discount, stock sign).
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)

	// Update shallow-merges patch over the stored record and refreshes
	// UpdatedAt. Returns domain.ErrProductNotFound when id is unknown.
	Update(ctx context.Context, id string, patch ProductUpdate) (*domain.Product, error)

	// Delete removes the record, reporting whether anything was deleted.
	// This is the only hard-delete in the model.
	Delete(ctx context.Context, id string) (bool, error)
}
