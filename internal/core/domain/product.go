package domain

import (
	"errors"
	"time"
)

// ProductStatus is the catalog lifecycle state of a product.
type ProductStatus string

const (
	StatusDraft    ProductStatus = "draft"
	StatusPending  ProductStatus = "pending"
	StatusActive   ProductStatus = "active"
	StatusInactive ProductStatus = "inactive"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a catalog entry. VendorID is a weak reference to a User with
// role VENDOR; the relation carries no ownership semantics. Discount is
// derived from price/originalPrice by the vendor and not enforced here.
type Product struct {
	ID             string            `json:"id" bson:"_id,omitempty"`
	Name           string            `json:"name" bson:"name"`
	Description    string            `json:"description" bson:"description"`
	Price          float64           `json:"price" bson:"price"`
	OriginalPrice  float64           `json:"original_price" bson:"original_price"`
	Discount       int               `json:"discount" bson:"discount"`
	Category       string            `json:"category" bson:"category"`
	Subcategory    string            `json:"subcategory" bson:"subcategory"`
	Images         []string          `json:"images" bson:"images"`
	Stock          int               `json:"stock" bson:"stock"`
	VendorID       string            `json:"vendor_id" bson:"vendor_id"`
	Rating         float64           `json:"rating" bson:"rating"`
	Reviews        int               `json:"reviews" bson:"reviews"`
	Specifications map[string]string `json:"specifications" bson:"specifications"`
	Status         ProductStatus     `json:"status" bson:"status"`
	CreatedAt      time.Time         `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" bson:"updated_at"`
}
