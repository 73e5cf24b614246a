package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

func floatPtr(v float64) *float64 { return &v }

func TestProductRepository_FindByID(t *testing.T) {
	repo := NewProductRepository(NewSeededStore())
	ctx := context.Background()

	p, err := repo.FindByID(ctx, "prod_1")
	require.NoError(t, err)
	assert.Equal(t, "Premium Noise-Cancelling Headphones", p.Name)

	_, err = repo.FindByID(ctx, "prod_404")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductRepository_FindAll(t *testing.T) {
	repo := NewProductRepository(NewSeededStore())
	ctx := context.Background()

	all, err := repo.FindAll(ctx, ports.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Stored order is preserved.
	assert.Equal(t, "prod_1", all[0].ID)
	assert.Equal(t, "prod_2", all[1].ID)

	laptops, err := repo.FindAll(ctx, ports.ProductFilter{Subcategory: "Laptops"})
	require.NoError(t, err)
	require.Len(t, laptops, 1)
	assert.Equal(t, "prod_2", laptops[0].ID)

	none, err := repo.FindAll(ctx, ports.ProductFilter{Category: "Electronics", Status: domain.StatusDraft})
	require.NoError(t, err)
	assert.Empty(t, none, "filters compose as AND")
}

func TestProductRepository_Search_SingleTerm(t *testing.T) {
	repo := NewProductRepository(NewSeededStore())

	results, err := repo.Search(context.Background(), ports.SearchParams{Query: "headphones"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "prod_1", results[0].ID)
}

func TestProductRepository_Search_PriceRangeExcludes(t *testing.T) {
	repo := NewProductRepository(NewSeededStore())

	// The laptop costs 899.99, below the minimum.
	results, err := repo.Search(context.Background(), ports.SearchParams{
		Query:    "laptop",
		MinPrice: floatPtr(1000),
		MaxPrice: floatPtr(2000),
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestProductRepository_Search_AnyTermMatches(t *testing.T) {
	repo := NewProductRepository(NewSeededStore())

	// One term matches each product; OR-of-terms returns both.
	results, err := repo.Search(context.Background(), ports.SearchParams{Query: "headphones laptop"})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestProductRepository_Search_CaseInsensitiveCategory(t *testing.T) {
	repo := NewProductRepository(NewSeededStore())

	results, err := repo.Search(context.Background(), ports.SearchParams{Category: "electronics"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = repo.Search(context.Background(), ports.SearchParams{Category: "stationery"})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestProductRepository_Search_EmptyQuerySkipsTextStage(t *testing.T) {
	repo := NewProductRepository(NewSeededStore())

	results, err := repo.Search(context.Background(), ports.SearchParams{MaxPrice: floatPtr(200)})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "prod_1", results[0].ID)
}

func TestProductRepository_CreateThenFindByID(t *testing.T) {
	repo := NewProductRepository(NewSeededStore())
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.Product{
		Name:        "Scientific Calculator FX-991",
		Description: "Non-programmable calculator approved for exams.",
		Price:       19.99,
		Category:    "Stationery",
		Subcategory: "Calculators",
		Stock:       200,
		VendorID:    "usr_3",
		Status:      domain.StatusActive,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Scientific Calculator FX-991", found.Name)
}

func TestProductRepository_Update(t *testing.T) {
	repo := NewProductRepository(NewSeededStore())
	ctx := context.Background()

	stock := 40
	price := 119.99
	updated, err := repo.Update(ctx, "prod_1", ports.ProductUpdate{Stock: &stock, Price: &price})
	require.NoError(t, err)

	assert.Equal(t, 40, updated.Stock)
	assert.Equal(t, 119.99, updated.Price)
	assert.Equal(t, "Premium Noise-Cancelling Headphones", updated.Name, "unpatched fields survive")
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestProductRepository_Update_UnknownID(t *testing.T) {
	store := NewSeededStore()
	repo := NewProductRepository(store)

	before := len(store.products)
	stock := 1
	_, err := repo.Update(context.Background(), "prod_404", ports.ProductUpdate{Stock: &stock})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Len(t, store.products, before)
}

func TestProductRepository_Delete(t *testing.T) {
	store := NewSeededStore()
	repo := NewProductRepository(store)
	ctx := context.Background()

	deleted, err := repo.Delete(ctx, "prod_1")
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Len(t, store.products, 1)

	_, err = repo.FindByID(ctx, "prod_1")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	deleted, err = repo.Delete(ctx, "prod_1")
	require.NoError(t, err)
	assert.False(t, deleted, "deleting an unknown id reports false")
	assert.Len(t, store.products, 1)
}

func TestProductRepository_ReadsAreIsolatedCopies(t *testing.T) {
	repo := NewProductRepository(NewSeededStore())
	ctx := context.Background()

	first, err := repo.FindByID(ctx, "prod_1")
	require.NoError(t, err)
	first.Specifications["Brand"] = "mutated"
	first.Images[0] = "mutated"

	second, err := repo.FindByID(ctx, "prod_1")
	require.NoError(t, err)
	assert.Equal(t, "TechPro", second.Specifications["Brand"])
	assert.Equal(t, "/placeholder.svg?height=300&width=300", second.Images[0])
}
