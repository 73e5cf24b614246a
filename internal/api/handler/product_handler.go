package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/studentdiscount/marketplace-api/internal/api/metrics"
	"github.com/studentdiscount/marketplace-api/internal/core/domain"
	"github.com/studentdiscount/marketplace-api/internal/core/ports"
)

type ProductHandler struct {
	productService ports.ProductService
}

func NewProductHandler(productService ports.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles GET /api/products — field-equality filters via query params.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        category     query  string  false  "Exact category"
// @Param        subcategory  query  string  false  "Exact subcategory"
// @Param        vendor_id    query  string  false  "Exact vendor id"
// @Param        status       query  string  false  "Exact status"
// @Success      200  {array}  domain.Product
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	filter := ports.ProductFilter{
		Category:    c.QueryParam("category"),
		Subcategory: c.QueryParam("subcategory"),
		VendorID:    c.QueryParam("vendor_id"),
		Status:      domain.ProductStatus(c.QueryParam("status")),
	}

	products, err := h.productService.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Search handles GET /api/products/search.
//
// @Summary      Search products
// @Tags         products
// @Produce      json
// @Param        q          query  string  false  "Free-text query, whitespace-separated terms"
// @Param        category   query  string  false  "Category, matched case-insensitively"
// @Param        min_price  query  number  false  "Minimum price (inclusive)"
// @Param        max_price  query  number  false  "Maximum price (inclusive)"
// @Success      200  {array}   domain.Product
// @Failure      400  {object}  errorResponse
// @Router       /api/products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	params := ports.SearchParams{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
	}

	var err error
	if params.MinPrice, err = parsePrice(c.QueryParam("min_price")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid min_price")
	}
	if params.MaxPrice, err = parsePrice(c.QueryParam("max_price")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid max_price")
	}

	metrics.ProductSearchesTotal.Inc()
	start := time.Now()
	products, err := h.productService.Search(c.Request().Context(), params)
	if err != nil {
		return err
	}
	metrics.ProductSearchDuration.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, products)
}

func parsePrice(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Get handles GET /api/products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.Product
// @Failure      404  {object}  errorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.productService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// Create handles POST /api/products. Vendors always create under their own
// id; admins may create on behalf of a vendor via vendor_id.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product fields"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	actorID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	vendorID := req.VendorID
	if role == domain.RoleVendor {
		vendorID = actorID
	}

	product, err := h.productService.Create(c.Request().Context(), actorID, ports.CreateProductInput{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Discount:       req.Discount,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		Images:         req.Images,
		Stock:          req.Stock,
		VendorID:       vendorID,
		Specifications: req.Specifications,
		Status:         domain.ProductStatus(req.Status),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, product)
}

// Update handles PUT /api/products/:id.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  domain.Product
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	actorID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	patch := ports.ProductUpdate{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Discount:       req.Discount,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		Images:         req.Images,
		Stock:          req.Stock,
		Rating:         req.Rating,
		Reviews:        req.Reviews,
		Specifications: req.Specifications,
	}
	if req.Status != nil {
		status := domain.ProductStatus(*req.Status)
		patch.Status = &status
	}

	product, err := h.productService.Update(c.Request().Context(), actorID, c.Param("id"), patch)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /api/products/:id — the only hard delete.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  deleteProductResponse
// @Failure      404  {object}  deleteProductResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	actorID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	deleted, err := h.productService.Delete(c.Request().Context(), actorID, c.Param("id"))
	if err != nil {
		return err
	}
	if !deleted {
		return c.JSON(http.StatusNotFound, deleteProductResponse{Deleted: false})
	}
	return c.JSON(http.StatusOK, deleteProductResponse{Deleted: true})
}
