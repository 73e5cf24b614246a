package handler

// errorResponse is the standard error envelope returned on 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createProductRequest struct {
	Name           string            `json:"name"           validate:"required"`
	Description    string            `json:"description"`
	Price          float64           `json:"price"          validate:"required,gt=0"`
	OriginalPrice  float64           `json:"original_price" validate:"omitempty,gt=0"`
	Discount       int               `json:"discount"       validate:"omitempty,min=0,max=100"`
	Category       string            `json:"category"       validate:"required"`
	Subcategory    string            `json:"subcategory"`
	Images         []string          `json:"images"`
	Stock          int               `json:"stock"`
	VendorID       string            `json:"vendor_id"`
	Specifications map[string]string `json:"specifications"`
	Status         string            `json:"status" validate:"omitempty,oneof=draft pending active inactive"`
}

type updateProductRequest struct {
	Name           *string           `json:"name"`
	Description    *string           `json:"description"`
	Price          *float64          `json:"price"          validate:"omitempty,gt=0"`
	OriginalPrice  *float64          `json:"original_price" validate:"omitempty,gt=0"`
	Discount       *int              `json:"discount"       validate:"omitempty,min=0,max=100"`
	Category       *string           `json:"category"`
	Subcategory    *string           `json:"subcategory"`
	Images         []string          `json:"images"`
	Stock          *int              `json:"stock"`
	Rating         *float64          `json:"rating"         validate:"omitempty,min=0,max=5"`
	Reviews        *int              `json:"reviews"        validate:"omitempty,min=0"`
	Specifications map[string]string `json:"specifications"`
	Status         *string           `json:"status" validate:"omitempty,oneof=draft pending active inactive"`
}

type deleteProductResponse struct {
	Deleted bool `json:"deleted"`
}
