package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

const collectionProducts = "products"

// ProductRepository implements ports.ProductRepository on a MongoDB collection.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{col: db.Collection(collectionProducts)}
}

// EnsureIndexes creates the query-path indexes for the catalog.
func (r *ProductRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "vendor_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Product
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// created_at ascending keeps the stored (insertion) order stable.
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cur.Close(ctx)

	products := make([]*domain.Product, 0)
	for cur.Next(ctx) {
		var p domain.Product
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		products = append(products, &p)
	}
	return products, cur.Err()
}

// FindAll applies the supplied field-equality constraints.
func (r *ProductRepository) FindAll(ctx context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Subcategory != "" {
		query["subcategory"] = filter.Subcategory
	}
	if filter.VendorID != "" {
		query["vendor_id"] = filter.VendorID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return r.findMany(ctx, query)
}

// Search builds the text stage as an $or of case-insensitive substring
// regexes per term and field, then stacks the category and price stages.
func (r *ProductRepository) Search(ctx context.Context, params ports.SearchParams) ([]*domain.Product, error) {
	query := bson.M{}

	if params.Query != "" {
		terms := strings.Fields(strings.ToLower(params.Query))
		var or []bson.M
		for _, term := range terms {
			pattern := regexp.QuoteMeta(term)
			for _, field := range []string{"name", "description", "category", "subcategory"} {
				or = append(or, bson.M{field: bson.M{"$regex": pattern, "$options": "i"}})
			}
		}
		if len(or) > 0 {
			query["$or"] = or
		}
	}

	if params.Category != "" {
		query["category"] = bson.M{
			"$regex":   fmt.Sprintf("^%s$", regexp.QuoteMeta(params.Category)),
			"$options": "i",
		}
	}

	price := bson.M{}
	if params.MinPrice != nil {
		price["$gte"] = *params.MinPrice
	}
	if params.MaxPrice != nil {
		price["$lte"] = *params.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}

	return r.findMany(ctx, query)
}

// Create inserts a new product document with a fresh id and timestamps.
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	record := *product
	record.ID = fmt.Sprintf("prod_%s", uuid.NewString())
	record.CreatedAt = now
	record.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, &record); err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	return &record, nil
}

// Update applies a partial patch with $set and returns the new document.
func (r *ProductRepository) Update(ctx context.Context, id string, patch ports.ProductUpdate) (*domain.Product, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.OriginalPrice != nil {
		set["original_price"] = *patch.OriginalPrice
	}
	if patch.Discount != nil {
		set["discount"] = *patch.Discount
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Subcategory != nil {
		set["subcategory"] = *patch.Subcategory
	}
	if patch.Images != nil {
		set["images"] = patch.Images
	}
	if patch.Stock != nil {
		set["stock"] = *patch.Stock
	}
	if patch.Rating != nil {
		set["rating"] = *patch.Rating
	}
	if patch.Reviews != nil {
		set["reviews"] = *patch.Reviews
	}
	if patch.Specifications != nil {
		set["specifications"] = patch.Specifications
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p domain.Product
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &p, nil
}

// Delete removes the document, reporting whether anything was deleted.
func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return res.DeletedCount > 0, nil
}
