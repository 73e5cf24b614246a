package memory

import (
	"context"
	"strings"
	"time"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

// ProductRepository implements ports.ProductRepository over the shared store.
type ProductRepository struct {
	store *Store
}

func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func cloneProduct(p *domain.Product) *domain.Product {
	clone := *p
	if p.Images != nil {
		clone.Images = append([]string(nil), p.Images...)
	}
	if p.Specifications != nil {
		clone.Specifications = make(map[string]string, len(p.Specifications))
		for k, v := range p.Specifications {
			clone.Specifications[k] = v
		}
	}
	return &clone
}

func (r *ProductRepository) FindByID(_ context.Context, id string) (*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, p := range r.store.products {
		if p.ID == id {
			return cloneProduct(p), nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// FindAll returns every product matching all supplied field-equality
// constraints, preserving stored order.
func (r *ProductRepository) FindAll(_ context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	results := make([]*domain.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Subcategory != "" && p.Subcategory != filter.Subcategory {
			continue
		}
		if filter.VendorID != "" && p.VendorID != filter.VendorID {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		results = append(results, cloneProduct(p))
	}
	return results, nil
}

// Search applies the text, category, and price stages as a sequential AND.
// The text stage matches a product when any whitespace-separated term of the
// query is a case-insensitive substring of name, description, category, or
// subcategory. An empty query skips the text stage.
func (r *ProductRepository) Search(_ context.Context, params ports.SearchParams) ([]*domain.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var terms []string
	if params.Query != "" {
		terms = strings.Fields(strings.ToLower(params.Query))
	}

	results := make([]*domain.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		if len(terms) > 0 && !matchesAnyTerm(p, terms) {
			continue
		}
		if params.Category != "" && !strings.EqualFold(p.Category, params.Category) {
			continue
		}
		if params.MinPrice != nil && p.Price < *params.MinPrice {
			continue
		}
		if params.MaxPrice != nil && p.Price > *params.MaxPrice {
			continue
		}
		results = append(results, cloneProduct(p))
	}
	return results, nil
}

func matchesAnyTerm(p *domain.Product, terms []string) bool {
	name := strings.ToLower(p.Name)
	description := strings.ToLower(p.Description)
	category := strings.ToLower(p.Category)
	subcategory := strings.ToLower(p.Subcategory)

	for _, term := range terms {
		if strings.Contains(name, term) ||
			strings.Contains(description, term) ||
			strings.Contains(category, term) ||
			strings.Contains(subcategory, term) {
			return true
		}
	}
	return false
}

// Create appends a new product with a fresh id and both timestamps stamped.
// Field consistency (price/discount, stock sign) is deliberately not checked.
func (r *ProductRepository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := time.Now().UTC()
	record := cloneProduct(product)
	record.ID = newID("prod")
	record.CreatedAt = now
	record.UpdatedAt = now

	r.store.products = append(r.store.products, record)
	return cloneProduct(record), nil
}

// Update shallow-merges the patch over the stored record in place.
func (r *ProductRepository) Update(_ context.Context, id string, patch ports.ProductUpdate) (*domain.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, p := range r.store.products {
		if p.ID != id {
			continue
		}
		applyProductPatch(p, patch)
		p.UpdatedAt = time.Now().UTC()
		return cloneProduct(p), nil
	}
	return nil, domain.ErrProductNotFound
}

func applyProductPatch(p *domain.Product, patch ports.ProductUpdate) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		p.OriginalPrice = *patch.OriginalPrice
	}
	if patch.Discount != nil {
		p.Discount = *patch.Discount
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Subcategory != nil {
		p.Subcategory = *patch.Subcategory
	}
	if patch.Images != nil {
		p.Images = append([]string(nil), patch.Images...)
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	if patch.Reviews != nil {
		p.Reviews = *patch.Reviews
	}
	if patch.Specifications != nil {
		p.Specifications = patch.Specifications
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
}

// Delete removes the record, reporting whether anything was removed.
func (r *ProductRepository) Delete(_ context.Context, id string) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, p := range r.store.products {
		if p.ID == id {
			r.store.products = append(r.store.products[:i], r.store.products[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
